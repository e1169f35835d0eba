package notify

import "github.com/iov-one/jointbank"

// Multi sends every event to all notifiers, in order.
func Multi(notifiers ...jointbank.Notifier) jointbank.Notifier {
	return multi(notifiers)
}

type multi []jointbank.Notifier

func (m multi) Notify(ctx jointbank.Context, e jointbank.Event) {
	for _, n := range m {
		n.Notify(ctx, e)
	}
}
