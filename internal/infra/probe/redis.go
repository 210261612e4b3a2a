package probe

import (
	"context"
	"fmt"

	"github.com/redis/go-redis/v9"
)

// RedisProbe checks a Redis dependency with PING.
type RedisProbe struct {
	name string
	rdb  *redis.Client
}

// NewRedisProbe creates a Redis prober. The connection is established
// lazily; a dependency that is down at startup simply fails its probes.
func NewRedisProbe(name, url string) (*RedisProbe, error) {
	opts, err := redis.ParseURL(url)
	if err != nil {
		return nil, fmt.Errorf("failed to parse redis URL: %w", err)
	}

	return &RedisProbe{name: name, rdb: redis.NewClient(opts)}, nil
}

func (p *RedisProbe) Name() string { return p.name }

func (p *RedisProbe) Probe(ctx context.Context) error {
	if err := p.rdb.Ping(ctx).Err(); err != nil {
		return classify(p.name, err)
	}
	return nil
}

// Close closes the Redis connection.
func (p *RedisProbe) Close() error {
	return p.rdb.Close()
}
