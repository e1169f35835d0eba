package jointbank

import "time"

// Event is an observable record of a completed state transition. Events are
// consumed by collaborators that are not part of the ledger, for example a
// user interface maintaining a list of accounts and their balances.
type Event interface {
	// EventName returns the name this kind of event is published under,
	// for example "Deposit".
	EventName() string

	// EventTime returns the block time of the transition.
	EventTime() time.Time

	// Tags returns the key/value attributes used to filter events.
	Tags() map[string]string
}

// Notifier is a sink for events.
//
// Notify is called only for transitions that were persisted. Implementations
// must not block the caller for long, must be safe for concurrent use and
// must not fail the transition. Delivery problems are for the notifier to
// log.
type Notifier interface {
	Notify(ctx Context, e Event)
}

// NopNotifier drops all events.
type NopNotifier struct{}

var _ Notifier = NopNotifier{}

// Notify implements Notifier.
func (NopNotifier) Notify(Context, Event) {}
