package persistence

import (
	"context"
	"fmt"
	"strconv"

	"github.com/redis/go-redis/v9"

	"gifts_buyer/internal/domain"
	"gifts_buyer/internal/domain/entity"
	"gifts_buyer/pkg/errcodes"
)

// RedisSnapshotStore keeps the snapshot in one hash: field = gift id,
// value = JSON record. Save replaces the hash atomically.
type RedisSnapshotStore struct {
	client redis.UniversalClient
	key    string
}

func NewRedisSnapshotStore(client redis.UniversalClient, key string) *RedisSnapshotStore {
	return &RedisSnapshotStore{
		client: client,
		key:    key,
	}
}

func (s *RedisSnapshotStore) Load(ctx context.Context) (entity.CatalogSnapshot, error) {
	fields, err := s.client.HGetAll(ctx, s.key).Result()
	if err != nil {
		return nil, fmt.Errorf("redis hgetall %s: %w", s.key, err)
	}

	return decodeHash(fields)
}

func (s *RedisSnapshotStore) Save(ctx context.Context, items []entity.GiftItem) error {
	values, err := encodeHash(items)
	if err != nil {
		return domain.WrapError(err, errcodes.SnapshotWriteFailed, "encode snapshot")
	}

	_, err = s.client.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
		pipe.Del(ctx, s.key)
		if len(values) > 0 {
			pipe.HSet(ctx, s.key, values)
		}

		return nil
	})
	if err != nil {
		return domain.WrapError(err, errcodes.SnapshotWriteFailed, fmt.Sprintf("redis save %s", s.key))
	}

	return nil
}

func (s *RedisSnapshotStore) Size(ctx context.Context) (int, error) {
	n, err := s.client.HLen(ctx, s.key).Result()
	if err != nil {
		return 0, fmt.Errorf("redis hlen %s: %w", s.key, err)
	}

	return int(n), nil
}

func encodeHash(items []entity.GiftItem) (map[string]any, error) {
	values := make(map[string]any, len(items))

	for _, item := range items {
		data, err := json.Marshal(newGiftRecord(item))
		if err != nil {
			return nil, fmt.Errorf("gift %d: %w", item.ID, err)
		}

		values[strconv.FormatInt(item.ID, 10)] = string(data)
	}

	return values, nil
}

func decodeHash(fields map[string]string) (entity.CatalogSnapshot, error) {
	records := make([]giftRecord, 0, len(fields))

	for field, value := range fields {
		var record giftRecord
		if err := json.Unmarshal([]byte(value), &record); err != nil {
			return nil, domain.WrapError(err, errcodes.SnapshotCorrupted, fmt.Sprintf("decode gift %s", field))
		}

		records = append(records, record)
	}

	return snapshotFromRecords(records), nil
}
