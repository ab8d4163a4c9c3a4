package otpinfra

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"github.com/Abraxas-365/supplierportal/pkg/iam/otp"
	"github.com/Abraxas-365/supplierportal/pkg/kernel"
	"github.com/redis/go-redis/v9"
)

const DefaultKeyPrefix = "supplierportal:otp:"

// compareAndDelete deletes KEYS[1] only while it still holds ARGV[1]
var compareAndDelete = redis.NewScript(`
if redis.call("GET", KEYS[1]) == ARGV[1] then
	return redis.call("DEL", KEYS[1])
end
return 0
`)

// RedisStore implements otp.Store on Redis so every API instance sees the
// same outstanding passcodes. Keys expire on their own once the record's
// lifetime plus the retention grace has passed.
type RedisStore struct {
	rdb    redis.UniversalClient
	prefix string
	grace  time.Duration
}

type RedisOption func(*RedisStore)

func WithKeyPrefix(prefix string) RedisOption {
	return func(s *RedisStore) { s.prefix = prefix }
}

// WithRetentionGrace keeps expired records readable for grace so that late
// submissions report an expired code instead of an unknown one.
func WithRetentionGrace(grace time.Duration) RedisOption {
	return func(s *RedisStore) {
		if grace >= 0 {
			s.grace = grace
		}
	}
}

func NewRedisStore(rdb redis.UniversalClient, opts ...RedisOption) *RedisStore {
	s := &RedisStore{
		rdb:    rdb,
		prefix: DefaultKeyPrefix,
		grace:  5 * time.Minute,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

func (s *RedisStore) key(identity kernel.Email) string {
	return s.prefix + identity.String()
}

// Put overwrites any record for identity
func (s *RedisStore) Put(ctx context.Context, identity kernel.Email, rec otp.Record) error {
	data, err := encodeRecord(rec)
	if err != nil {
		return storeErrors.NewWithCause(ErrMarshal, err)
	}

	ttl := rec.ExpiresAt.Sub(rec.IssuedAt) + s.grace
	if ttl <= 0 {
		ttl = s.grace + time.Second
	}

	if err := s.rdb.Set(ctx, s.key(identity), data, ttl).Err(); err != nil {
		return storeErrors.NewWithCause(ErrPut, err).WithDetail("identity", identity)
	}
	return nil
}

func (s *RedisStore) Get(ctx context.Context, identity kernel.Email) (*otp.Record, error) {
	data, err := s.rdb.Get(ctx, s.key(identity)).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, nil
		}
		return nil, storeErrors.NewWithCause(ErrGet, err).WithDetail("identity", identity)
	}

	var rec otp.Record
	if err := json.Unmarshal(data, &rec); err != nil {
		return nil, storeErrors.NewWithCause(ErrUnmarshal, err).WithDetail("identity", identity)
	}
	return &rec, nil
}

func (s *RedisStore) Delete(ctx context.Context, identity kernel.Email) error {
	if err := s.rdb.Del(ctx, s.key(identity)).Err(); err != nil {
		return storeErrors.NewWithCause(ErrDelete, err).WithDetail("identity", identity)
	}
	return nil
}

// CompareAndDelete atomically removes the record if it is still rec
func (s *RedisStore) CompareAndDelete(ctx context.Context, identity kernel.Email, rec otp.Record) (bool, error) {
	data, err := encodeRecord(rec)
	if err != nil {
		return false, storeErrors.NewWithCause(ErrMarshal, err)
	}

	deleted, err := compareAndDelete.Run(ctx, s.rdb, []string{s.key(identity)}, data).Int64()
	if err != nil {
		return false, storeErrors.NewWithCause(ErrDelete, err).WithDetail("identity", identity)
	}
	return deleted == 1, nil
}

// encodeRecord is deterministic for a given record so that a record read back
// with Get encodes to the exact stored payload.
func encodeRecord(rec otp.Record) (string, error) {
	rec.ExpiresAt = rec.ExpiresAt.UTC()
	rec.IssuedAt = rec.IssuedAt.UTC()
	data, err := json.Marshal(rec)
	if err != nil {
		return "", err
	}
	return string(data), nil
}
