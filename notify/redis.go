package notify

import (
	"context"
	"encoding/json"
	"time"

	"github.com/go-redis/redis/v8"
	"github.com/iov-one/jointbank"
	"github.com/tendermint/tendermint/libs/log"
)

// DefaultRedisChannel is the channel events are published on.
const DefaultRedisChannel = "jointbank:events"

// Redis publishes events as JSON envelopes on a redis channel.
type Redis struct {
	client  redis.UniversalClient
	channel string
	timeout time.Duration
	logger  log.Logger
}

var _ jointbank.Notifier = (*Redis)(nil)

// NewRedis returns a notifier publishing through client. An empty channel
// selects DefaultRedisChannel.
func NewRedis(client redis.UniversalClient, channel string, logger log.Logger) *Redis {
	if channel == "" {
		channel = DefaultRedisChannel
	}
	return &Redis{
		client:  client,
		channel: channel,
		timeout: time.Second,
		logger:  logger.With("module", "redis"),
	}
}

// Channel returns the name of the channel events are published on.
func (r *Redis) Channel() string {
	return r.channel
}

// Notify implements jointbank.Notifier.
func (r *Redis) Notify(ctx jointbank.Context, e jointbank.Event) {
	env, err := NewEnvelope(e)
	if err != nil {
		r.logger.Error("cannot build envelope", "event", e.EventName(), "err", err)
		return
	}
	payload, err := json.Marshal(env)
	if err != nil {
		r.logger.Error("cannot serialize envelope", "event", e.EventName(), "err", err)
		return
	}

	ctx, cancel := context.WithTimeout(ctx, r.timeout)
	defer cancel()
	if err := r.client.Publish(ctx, r.channel, payload).Err(); err != nil {
		r.logger.Error("cannot publish event", "event", e.EventName(), "id", env.ID, "err", err)
		return
	}
	r.logger.Debug("event published", "event", e.EventName(), "id", env.ID)
}
