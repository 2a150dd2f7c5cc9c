package infra

import (
	"context"
	"fmt"
	"strings"
	"time"

	"autoscaling-demo/middleware/ratelimit/domain"

	"github.com/redis/go-redis/v9"
)

const (
	BucketMinute = "minute"
	BucketNone   = "none"
)

// RedisStatsStore grava as decisões do rate limit em hashes do Redis:
//
//	<prefix>:total                  allowed|denied (cumulativo, sem TTL)
//	<prefix>:minute:<yyyymmddHHMM>  allowed|denied (com TTL)
//	<prefix>:route                  "<METHOD> <path>:allowed|denied"
//	<prefix>:key:<key>              allowed|denied (só com trackKeys, com TTL)
type RedisStatsStore struct {
	rdb redis.UniversalClient

	prefix    string
	ttl       time.Duration
	bucket    string
	trackKeys bool
}

type RedisStatsOption func(*RedisStatsStore)

func WithStatsPrefix(prefix string) RedisStatsOption {
	return func(s *RedisStatsStore) { s.prefix = strings.Trim(prefix, ":") }
}

func WithStatsTTL(d time.Duration) RedisStatsOption {
	return func(s *RedisStatsStore) { s.ttl = d }
}

// WithStatsBucket aceita BucketMinute ou BucketNone.
func WithStatsBucket(bucket string) RedisStatsOption {
	return func(s *RedisStatsStore) { s.bucket = strings.ToLower(strings.TrimSpace(bucket)) }
}

func WithStatsTrackKeys(track bool) RedisStatsOption {
	return func(s *RedisStatsStore) { s.trackKeys = track }
}

func NewRedisStatsStore(rdb redis.UniversalClient, opts ...RedisStatsOption) *RedisStatsStore {
	s := &RedisStatsStore{
		rdb:    rdb,
		prefix: "ratelimit:stats",
		ttl:    24 * time.Hour,
		bucket: BucketMinute,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// hincr é um HINCRBY key field 1, com EXPIRE opcional.
type hincr struct {
	key    string
	field  string
	expire bool
}

func (s *RedisStatsStore) plan(ev domain.StatsEvent) []hincr {
	at := ev.At
	if at.IsZero() {
		at = time.Now()
	}

	field := "denied"
	if ev.Allowed {
		field = "allowed"
	}

	ops := []hincr{{key: s.prefix + ":total", field: field}}

	if s.bucket == BucketMinute {
		ops = append(ops, hincr{
			key:    fmt.Sprintf("%s:minute:%s", s.prefix, at.UTC().Format("200601021504")),
			field:  field,
			expire: true,
		})
	}

	if route := strings.TrimSpace(strings.TrimSpace(ev.Method) + " " + strings.TrimSpace(ev.Path)); route != "" {
		ops = append(ops, hincr{key: s.prefix + ":route", field: route + ":" + field})
	}

	if s.trackKeys {
		if k := strings.TrimSpace(string(ev.Key)); k != "" {
			ops = append(ops, hincr{key: s.prefix + ":key:" + k, field: field, expire: true})
		}
	}

	return ops
}

func (s *RedisStatsStore) Record(ctx context.Context, ev domain.StatsEvent) error {
	if s == nil || s.rdb == nil {
		return nil
	}

	pipe := s.rdb.Pipeline()
	for _, op := range s.plan(ev) {
		pipe.HIncrBy(ctx, op.key, op.field, 1)
		if op.expire && s.ttl > 0 {
			pipe.Expire(ctx, op.key, s.ttl)
		}
	}

	if _, err := pipe.Exec(ctx); err != nil {
		return fmt.Errorf("redis stats: %w", err)
	}
	return nil
}
