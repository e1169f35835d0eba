package api

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/iov-one/jointbank"
	"github.com/iov-one/jointbank/notify"
)

// streamEvents writes events matching the query parameter as server sent
// events until the client goes away or the subscription is cancelled.
func (s *Server) streamEvents(w http.ResponseWriter, r *http.Request) {
	flusher, ok := w.(http.Flusher)
	if !ok {
		JSONErr(w, s.logger, http.StatusNotImplemented, "streaming not supported")
		return
	}

	ctx := r.Context()
	sub, err := s.events.Subscribe(ctx, r.URL.Query().Get("query"))
	if err != nil {
		writeError(w, s.logger, err)
		return
	}
	defer func() {
		// The request context is done by now.
		if err := s.events.Unsubscribe(context.Background(), sub); err != nil {
			s.logger.Debug("unsubscribe", "client", sub.ClientID, "err", err)
		}
	}()

	w.Header().Set("Content-Type", "text/event-stream")
	w.Header().Set("Cache-Control", "no-cache")
	w.WriteHeader(http.StatusOK)
	fmt.Fprintf(w, ": subscribed %s\n\n", sub.ClientID)
	flusher.Flush()

	for {
		select {
		case <-ctx.Done():
			return
		case <-sub.Cancelled():
			return
		case msg := <-sub.Events():
			e, ok := msg.Data().(jointbank.Event)
			if !ok {
				continue
			}
			env, err := notify.NewEnvelope(e)
			if err != nil {
				s.logger.Error("cannot serialize event", "event", e.EventName(), "err", err)
				continue
			}
			raw, err := json.Marshal(env)
			if err != nil {
				s.logger.Error("cannot serialize envelope", "event", e.EventName(), "err", err)
				continue
			}
			fmt.Fprintf(w, "id: %s\nevent: %s\ndata: %s\n\n", env.ID, env.Name, raw)
			flusher.Flush()
		}
	}
}
