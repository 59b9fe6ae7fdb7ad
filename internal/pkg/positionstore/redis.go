package positionstore

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/go-redis/redis/v8"
	"github.com/yatralink/bustrack/internal/pkg/constants"
	"github.com/yatralink/bustrack/internal/pkg/database"
	"github.com/yatralink/bustrack/internal/pkg/logger"
	"github.com/yatralink/bustrack/internal/pkg/models"
)

// upsertScript merges fields into the position hash, refreshes its TTL,
// indexes the vehicle and publishes the change. A sample older than the
// stored one is ignored so ts never goes backwards.
//
// KEYS[1] position hash, KEYS[2] active index
// ARGV[1] vehicle id, ARGV[2] channel, ARGV[3] ttl millis, ARGV[4] ts or ""
// ARGV[5..] field/value pairs
var upsertScript = redis.NewScript(`
local ts = tonumber(ARGV[4])
if ts then
	local current = tonumber(redis.call('HGET', KEYS[1], 'ts'))
	if current and current > ts then
		return 0
	end
end
for i = 5, #ARGV, 2 do
	redis.call('HSET', KEYS[1], ARGV[i], ARGV[i + 1])
end
local ttl = tonumber(ARGV[3])
if ttl and ttl > 0 then
	redis.call('PEXPIRE', KEYS[1], ttl)
end
redis.call('SADD', KEYS[2], ARGV[1])
redis.call('PUBLISH', ARGV[2], ARGV[1])
return 1
`)

// RedisStore keeps one hash per vehicle plus an index set, and announces
// every change on a pub/sub channel
type RedisStore struct {
	redis *database.RedisClient
	opts  Options
}

// NewRedisStore creates a Redis backed position store
func NewRedisStore(redisClient *database.RedisClient, opts Options) *RedisStore {
	return &RedisStore{redis: redisClient, opts: opts}
}

func positionKey(vehicleID string) string {
	return fmt.Sprintf(constants.KeyBusPosition, vehicleID)
}

// Upsert merges fields into the vehicle's hash
func (s *RedisStore) Upsert(ctx context.Context, key string, fields map[string]string) error {
	ts := ""
	if ms, ok := timestampOf(fields); ok {
		ts = fmt.Sprintf("%d", ms)
	}

	args := make([]interface{}, 0, 4+2*len(fields))
	args = append(args, key, constants.ChannelBusPositions, s.opts.PositionTTL.Milliseconds(), ts)
	for field, value := range fields {
		args = append(args, field, value)
	}

	keys := []string{positionKey(key), constants.KeyActiveBuses}
	if err := upsertScript.Run(ctx, s.redis.Client, keys, args...).Err(); err != nil && err != redis.Nil {
		return fmt.Errorf("%w: vehicle %s: %v", models.ErrStoreWrite, key, err)
	}
	return nil
}

// Delete removes the vehicle's hash and index entry in one transaction
func (s *RedisStore) Delete(ctx context.Context, key string) error {
	_, err := s.redis.Client.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
		pipe.Del(ctx, positionKey(key))
		pipe.SRem(ctx, constants.KeyActiveBuses, key)
		pipe.Publish(ctx, constants.ChannelBusPositions, key)
		return nil
	})
	if err != nil {
		return fmt.Errorf("%w: vehicle %s: %v", models.ErrStoreDelete, key, err)
	}
	return nil
}

// Load reads the complete current set. Index members whose hash has
// expired are removed from the index.
func (s *RedisStore) Load(ctx context.Context) ([]Document, error) {
	ids, err := s.redis.SMembers(ctx, constants.KeyActiveBuses)
	if err != nil {
		return nil, fmt.Errorf("failed to read active vehicles: %w", err)
	}
	if len(ids) == 0 {
		return []Document{}, nil
	}

	cmds := make([]*redis.StringStringMapCmd, len(ids))
	_, err = s.redis.Client.Pipelined(ctx, func(pipe redis.Pipeliner) error {
		for i, id := range ids {
			cmds[i] = pipe.HGetAll(ctx, positionKey(id))
		}
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("failed to read vehicle positions: %w", err)
	}

	docs := make([]Document, 0, len(ids))
	var dangling []interface{}
	for i, cmd := range cmds {
		fields := cmd.Val()
		if len(fields) == 0 {
			dangling = append(dangling, ids[i])
			continue
		}
		docs = append(docs, Document{Key: ids[i], Fields: fields})
	}

	if len(dangling) > 0 {
		if err := s.redis.SRem(ctx, constants.KeyActiveBuses, dangling...); err != nil {
			logger.Warn("Failed to prune expired vehicles from index",
				logger.Int("count", len(dangling)),
				logger.Err(err))
		}
	}

	sortDocuments(docs)
	return docs, nil
}

// Subscribe listens on the change channel and reloads the full set on
// every notification. The subscription is confirmed before the initial
// load so no change between the two is missed.
func (s *RedisStore) Subscribe(ctx context.Context) (Subscription, error) {
	pubsub := s.redis.Client.Subscribe(ctx, constants.ChannelBusPositions)
	if _, err := pubsub.Receive(ctx); err != nil {
		_ = pubsub.Close()
		return nil, fmt.Errorf("failed to subscribe to %s: %w", constants.ChannelBusPositions, err)
	}

	initial, err := s.Load(ctx)
	if err != nil {
		_ = pubsub.Close()
		return nil, err
	}

	loopCtx, cancel := context.WithCancel(context.Background())
	sub := &redisSubscription{
		store:   s,
		pubsub:  pubsub,
		updates: make(chan []Document, 1),
		done:    make(chan struct{}),
		closed:  make(chan struct{}),
		cancel:  cancel,
	}
	offer(sub.updates, initial)

	go sub.run(loopCtx)
	return sub, nil
}

type redisSubscription struct {
	store   *RedisStore
	pubsub  *redis.PubSub
	updates chan []Document
	done    chan struct{}
	closed  chan struct{}
	cancel  context.CancelFunc

	mu  sync.Mutex
	err error

	closeOnce sync.Once
}

func (sub *redisSubscription) run(ctx context.Context) {
	defer close(sub.done)

	messages := sub.pubsub.Channel()

	var resync <-chan time.Time
	if sub.store.opts.ResyncInterval > 0 {
		ticker := time.NewTicker(sub.store.opts.ResyncInterval)
		defer ticker.Stop()
		resync = ticker.C
	}

	for {
		select {
		case <-ctx.Done():
			return
		case _, ok := <-messages:
			if !ok {
				sub.fail(fmt.Errorf("change channel %s closed", constants.ChannelBusPositions))
				return
			}
			drain(messages)
		case <-resync:
		}

		docs, err := sub.store.Load(ctx)
		if err != nil {
			if ctx.Err() != nil {
				return
			}
			sub.fail(err)
			return
		}
		offer(sub.updates, docs)
	}
}

// drain discards notifications already queued, they are covered by the next load
func drain(messages <-chan *redis.Message) {
	for {
		select {
		case _, ok := <-messages:
			if !ok {
				return
			}
		default:
			return
		}
	}
}

func (sub *redisSubscription) fail(err error) {
	sub.mu.Lock()
	sub.err = err
	sub.mu.Unlock()
}

// Next returns the latest undelivered set. After the stream fails it
// returns the failure once pending sets are consumed.
func (sub *redisSubscription) Next(ctx context.Context) ([]Document, error) {
	select {
	case <-sub.closed:
		return nil, models.ErrSubscriptionClosed
	default:
	}

	select {
	case docs := <-sub.updates:
		return docs, nil
	case <-sub.closed:
		return nil, models.ErrSubscriptionClosed
	case <-sub.done:
		select {
		case docs := <-sub.updates:
			return docs, nil
		default:
		}
		sub.mu.Lock()
		err := sub.err
		sub.mu.Unlock()
		if err == nil {
			err = models.ErrSubscriptionClosed
		}
		return nil, err
	case <-ctx.Done():
		return nil, ctx.Err()
	}
}

// Close ends the subscription. It is safe to call more than once.
func (sub *redisSubscription) Close() error {
	var err error
	sub.closeOnce.Do(func() {
		close(sub.closed)
		sub.cancel()
		err = sub.pubsub.Close()
		<-sub.done
	})
	return err
}
