package auditlog

import (
	"context"
	"fmt"
	"log"
	"time"

	"github.com/redis/go-redis/v9"
)

// RedisLog appends changes to a Redis stream with XADD.
type RedisLog struct {
	client *redis.Client
	stream string
}

// OpenRedis connects to addr and verifies the connection with PING.
func OpenRedis(addr, stream string) (*RedisLog, error) {
	client := redis.NewClient(&redis.Options{
		Addr: addr,
		DB:   0,
	})

	ctx, cancel := context.WithTimeout(context.Background(), recordTimeout)
	defer cancel()
	if err := client.Ping(ctx).Err(); err != nil {
		client.Close()
		return nil, ioFailure("connect redis "+addr, err)
	}
	return &RedisLog{client: client, stream: stream}, nil
}

// Stream returns the stream key entries are appended to.
func (l *RedisLog) Stream() string {
	return l.stream
}

// Record appends message to the stream. Failures are reported as warnings.
func (l *RedisLog) Record(message string) {
	ctx, cancel := context.WithTimeout(context.Background(), recordTimeout)
	defer cancel()

	err := l.client.XAdd(ctx, &redis.XAddArgs{
		Stream: l.stream,
		Values: map[string]any{
			"message":    message,
			"created_at": time.Now().UTC().Format(timeLayout),
		},
	}).Err()
	if err != nil {
		log.Printf("warning: write change log stream %s: %v", l.stream, err)
	}
}

// Entries implements History.
func (l *RedisLog) Entries(ctx context.Context, limit int) ([]Entry, error) {
	var (
		msgs []redis.XMessage
		err  error
	)
	if limit > 0 {
		msgs, err = l.client.XRevRangeN(ctx, l.stream, "+", "-", int64(limit)).Result()
	} else {
		msgs, err = l.client.XRevRange(ctx, l.stream, "+", "-").Result()
	}
	if err != nil {
		return nil, ioFailure("read stream "+l.stream, err)
	}

	entries := make([]Entry, 0, len(msgs))
	for _, m := range msgs {
		e := Entry{ID: m.ID}
		e.Message, _ = m.Values["message"].(string)
		if created, ok := m.Values["created_at"].(string); ok {
			e.CreatedAt, err = time.Parse(timeLayout, created)
			if err != nil {
				return nil, fmt.Errorf("parse created_at for entry %s: %w", m.ID, err)
			}
		}
		entries = append(entries, e)
	}
	return entries, nil
}

// Close closes the client connection pool.
func (l *RedisLog) Close() error {
	return l.client.Close()
}
