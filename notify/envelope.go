package notify

import (
	"encoding/json"
	"time"

	"github.com/google/uuid"
	"github.com/iov-one/jointbank"
	"github.com/iov-one/jointbank/errors"
)

// Envelope is the serialized form of an event sent to external
// subscribers.
type Envelope struct {
	ID   string            `json:"id"`
	Name string            `json:"name"`
	Time time.Time         `json:"time"`
	Tags map[string]string `json:"tags"`
	Data json.RawMessage   `json:"data"`
}

// NewEnvelope wraps an event, giving it a unique id.
func NewEnvelope(e jointbank.Event) (*Envelope, error) {
	data, err := json.Marshal(e)
	if err != nil {
		return nil, errors.Wrapf(errors.ErrInput, "serialize %s: %s", e.EventName(), err)
	}
	return &Envelope{
		ID:   uuid.New().String(),
		Name: e.EventName(),
		Time: e.EventTime().UTC(),
		Tags: e.Tags(),
		Data: data,
	}, nil
}
