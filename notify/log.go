package notify

import (
	"github.com/iov-one/jointbank"
	"github.com/tendermint/tendermint/libs/log"
)

// Logger writes every event to a logger on info level.
type Logger struct {
	logger log.Logger
}

var _ jointbank.Notifier = (*Logger)(nil)

// NewLogger returns a notifier writing to logger.
func NewLogger(logger log.Logger) *Logger {
	return &Logger{logger: logger.With("module", "notify")}
}

// Notify implements jointbank.Notifier.
func (l *Logger) Notify(_ jointbank.Context, e jointbank.Event) {
	keyvals := make([]interface{}, 0, 2+2*len(e.Tags()))
	keyvals = append(keyvals, "time", e.EventTime())
	for k, v := range e.Tags() {
		keyvals = append(keyvals, k, v)
	}
	l.logger.Info(e.EventName(), keyvals...)
}
