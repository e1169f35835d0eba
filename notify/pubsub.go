package notify

import (
	"context"

	"github.com/google/uuid"
	"github.com/iov-one/jointbank"
	"github.com/iov-one/jointbank/errors"
	"github.com/tendermint/tendermint/libs/log"
	"github.com/tendermint/tendermint/libs/pubsub"
	"github.com/tendermint/tendermint/libs/pubsub/query"
)

// DefaultSubscriptionCapacity is the number of events buffered for a
// single subscriber.
const DefaultSubscriptionCapacity = 100

// PubSub fans events out to in process subscribers. Subscribers select
// events with a query over the event tags, for example
//   bankaccount.event = 'Deposit' AND bankaccount.account = '3'
type PubSub struct {
	server *pubsub.Server
	logger log.Logger
}

var _ jointbank.Notifier = (*PubSub)(nil)

// NewPubSub starts a pubsub server. Call Stop to release it.
func NewPubSub(logger log.Logger) (*PubSub, error) {
	s := pubsub.NewServer(pubsub.BufferCapacity(DefaultSubscriptionCapacity))
	s.SetLogger(logger.With("module", "pubsub"))
	if err := s.Start(); err != nil {
		return nil, errors.Wrapf(errors.ErrHuman, "start pubsub: %s", err)
	}
	return &PubSub{server: s, logger: logger}, nil
}

// Notify implements jointbank.Notifier.
func (p *PubSub) Notify(ctx jointbank.Context, e jointbank.Event) {
	if err := p.server.PublishWithTags(ctx, e, e.Tags()); err != nil {
		p.logger.Error("cannot publish event", "event", e.EventName(), "err", err)
	}
}

// Subscription receives the events matching a query.
type Subscription struct {
	ClientID string
	sub      *pubsub.Subscription
}

// Events returns the channel delivering matching events.
func (s *Subscription) Events() <-chan pubsub.Message {
	return s.sub.Out()
}

// Cancelled is closed when the subscription was terminated, for example
// because the subscriber did not keep up.
func (s *Subscription) Cancelled() <-chan struct{} {
	return s.sub.Cancelled()
}

// Subscribe registers a new subscriber receiving events that match q. An
// empty query matches all events.
func (p *PubSub) Subscribe(ctx context.Context, q string) (*Subscription, error) {
	var pq pubsub.Query = query.Empty{}
	if q != "" {
		parsed, err := query.New(q)
		if err != nil {
			return nil, errors.Wrapf(errors.ErrInput, "query: %s", err)
		}
		pq = parsed
	}
	clientID := uuid.New().String()
	sub, err := p.server.Subscribe(ctx, clientID, pq, DefaultSubscriptionCapacity)
	if err != nil {
		return nil, errors.Wrapf(errors.ErrHuman, "subscribe: %s", err)
	}
	return &Subscription{ClientID: clientID, sub: sub}, nil
}

// Unsubscribe cancels all subscriptions of given client.
func (p *PubSub) Unsubscribe(ctx context.Context, s *Subscription) error {
	if err := p.server.UnsubscribeAll(ctx, s.ClientID); err != nil {
		return errors.Wrapf(errors.ErrNotFound, "unsubscribe: %s", err)
	}
	return nil
}

// Stop stops the server. All subscriptions are cancelled.
func (p *PubSub) Stop() error {
	return p.server.Stop()
}
