package redis

import (
	"context"
	"encoding/json"
	"fmt"
	"sort"
	"strconv"
	"time"

	"github.com/aretw0/rephraser/pkg/adapters/memory"
	"github.com/aretw0/rephraser/pkg/codec"
	"github.com/aretw0/rephraser/pkg/domain"
	"github.com/aretw0/rephraser/pkg/ports"
	backend "github.com/redis/go-redis/v9"
)

const (
	defaultPrefix    = "rephraser:model:"
	defaultBatchSize = 512
	importLockTTL    = 5 * time.Minute
)

// Store keeps a compiled model in Redis, one string key per context holding the
// compiled entry, plus an index set and a meta hash. It implements
// ports.ModelSource: Load pulls the whole model into memory so traversal never
// touches the network.
type Store struct {
	client    *backend.Client
	prefix    string
	batchSize int
	locker    *Locker
}

type Option func(*Store)

// WithPrefix sets the key prefix for the model keyspace.
func WithPrefix(prefix string) Option {
	return func(s *Store) {
		s.prefix = prefix
	}
}

// WithBatchSize sets how many keys are written or fetched per round trip.
func WithBatchSize(n int) Option {
	return func(s *Store) {
		if n > 0 {
			s.batchSize = n
		}
	}
}

// New creates a new Redis store with options.
func New(address, password string, db int, opts ...Option) *Store {
	rdb := backend.NewClient(&backend.Options{
		Addr:     address,
		Password: password,
		DB:       db,
	})
	return NewFromClient(rdb, opts...)
}

// NewFromURL creates a store from a redis:// URL.
func NewFromURL(url string, opts ...Option) (*Store, error) {
	o, err := backend.ParseURL(url)
	if err != nil {
		return nil, fmt.Errorf("invalid redis url: %w", err)
	}
	return NewFromClient(backend.NewClient(o), opts...), nil
}

// NewFromClient creates a new Redis store from an existing client.
func NewFromClient(client *backend.Client, opts ...Option) *Store {
	store := &Store{
		client:    client,
		prefix:    defaultPrefix,
		batchSize: defaultBatchSize,
	}

	for _, opt := range opts {
		opt(store)
	}
	store.locker = NewLocker(client, store.prefix)

	return store
}

func (s *Store) key(c string) string {
	return s.prefix + "ctx:" + c
}

func (s *Store) indexKey() string {
	return s.prefix + "index"
}

func (s *Store) metaKey() string {
	return s.prefix + "meta"
}

// Import replaces the stored model with the given one.
// Concurrent importers on the same prefix are serialized with a lock.
func (s *Store) Import(ctx context.Context, model *memory.Model) error {
	unlock, err := s.locker.Lock(ctx, "import", importLockTTL)
	if err != nil {
		return err
	}
	defer func() { _ = unlock(context.Background()) }()

	if err := s.clear(ctx); err != nil {
		return err
	}

	entries := model.Entries()
	keys := make([]string, 0, len(entries))
	for k := range entries {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	for start := 0; start < len(keys); start += s.batchSize {
		end := min(start+s.batchSize, len(keys))

		pipe := s.client.Pipeline()
		members := make([]any, 0, end-start)
		for _, k := range keys[start:end] {
			data, err := json.Marshal(codec.Entry(entries[k]))
			if err != nil {
				return fmt.Errorf("failed to marshal entry %q: %w", k, err)
			}
			pipe.Set(ctx, s.key(k), data, 0)
			members = append(members, k)
		}
		pipe.SAdd(ctx, s.indexKey(), members...)
		if _, err := pipe.Exec(ctx); err != nil {
			return fmt.Errorf("failed to save to redis: %w", err)
		}
	}

	err = s.client.HSet(ctx, s.metaKey(),
		"state_size", model.StateSize(),
		"contexts", len(keys),
	).Err()
	if err != nil {
		return fmt.Errorf("failed to save model meta: %w", err)
	}
	return nil
}

// Load reads the stored model into memory.
func (s *Store) Load(ctx context.Context) (ports.TransitionModel, error) {
	return s.LoadModel(ctx)
}

// LoadModel is Load with the concrete return type.
func (s *Store) LoadModel(ctx context.Context) (*memory.Model, error) {
	sizeStr, err := s.client.HGet(ctx, s.metaKey(), "state_size").Result()
	if err != nil {
		if err == backend.Nil {
			return nil, fmt.Errorf("no model stored under %q", s.prefix)
		}
		return nil, fmt.Errorf("failed to read model meta: %w", err)
	}
	stateSize, err := strconv.Atoi(sizeStr)
	if err != nil {
		return nil, fmt.Errorf("invalid state_size %q: %w", sizeStr, err)
	}

	keys, err := s.client.SMembers(ctx, s.indexKey()).Result()
	if err != nil {
		return nil, fmt.Errorf("failed to list contexts: %w", err)
	}
	sort.Strings(keys)

	data := make(map[string]domain.Transition, len(keys))
	for start := 0; start < len(keys); start += s.batchSize {
		end := min(start+s.batchSize, len(keys))
		batch := keys[start:end]

		redisKeys := make([]string, len(batch))
		for i, k := range batch {
			redisKeys[i] = s.key(k)
		}
		vals, err := s.client.MGet(ctx, redisKeys...).Result()
		if err != nil {
			return nil, fmt.Errorf("failed to get from redis: %w", err)
		}

		for i, v := range vals {
			str, ok := v.(string)
			if !ok {
				return nil, fmt.Errorf("%w: %q", domain.ErrContextNotFound, batch[i])
			}
			var e codec.Entry
			if err := json.Unmarshal([]byte(str), &e); err != nil {
				return nil, fmt.Errorf("context %q: %w", batch[i], err)
			}
			data[batch[i]] = e.Transition()
		}
	}

	return memory.NewModel(stateSize, data)
}

// Delete removes the stored model.
func (s *Store) Delete(ctx context.Context) error {
	unlock, err := s.locker.Lock(ctx, "import", importLockTTL)
	if err != nil {
		return err
	}
	defer func() { _ = unlock(context.Background()) }()
	return s.clear(ctx)
}

func (s *Store) clear(ctx context.Context) error {
	keys, err := s.client.SMembers(ctx, s.indexKey()).Result()
	if err != nil {
		return fmt.Errorf("failed to list contexts: %w", err)
	}

	for start := 0; start < len(keys); start += s.batchSize {
		end := min(start+s.batchSize, len(keys))
		redisKeys := make([]string, 0, end-start)
		for _, k := range keys[start:end] {
			redisKeys = append(redisKeys, s.key(k))
		}
		if err := s.client.Del(ctx, redisKeys...).Err(); err != nil {
			return fmt.Errorf("failed to delete contexts: %w", err)
		}
	}

	if err := s.client.Del(ctx, s.indexKey(), s.metaKey()).Err(); err != nil {
		return fmt.Errorf("failed to delete model index: %w", err)
	}
	return nil
}

// Close closes the redis client.
func (s *Store) Close() error {
	return s.client.Close()
}
