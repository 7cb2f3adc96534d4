package sink

import (
	"context"

	"log/slog"

	"github.com/cockroachdb/errors"
	"github.com/redis/go-redis/v9"

	"tracelog/pkg/fault"
)

// Redis publishes each formatted line to a pub/sub channel, so an external
// collector can tail diagnostics without a file or HTTP endpoint.
type Redis struct {
	client  *redis.Client
	channel string
}

// RedisOptions configures the Redis listener.
type RedisOptions struct {
	Addr     string
	Password string
	DB       int
	Channel  string
}

func NewRedis(opts RedisOptions) *Redis {
	rdb := redis.NewClient(&redis.Options{
		Addr:     opts.Addr,
		Password: opts.Password,
		DB:       opts.DB,
	})
	return &Redis{
		client:  rdb,
		channel: opts.Channel,
	}
}

func (r *Redis) Emit(level slog.Level, eventID int, message string, f fault.Fault) error {
	if err := r.client.Publish(context.Background(), r.channel, message).Err(); err != nil {
		return errors.Wrapf(err, "redis sink: publish to %s", r.channel)
	}
	return nil
}

func (r *Redis) Close() error {
	return r.client.Close()
}
