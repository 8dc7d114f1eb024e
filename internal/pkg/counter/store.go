package counter

import (
	"Wellspring/internal/api/config"
	"Wellspring/internal/pkg/logger"
	"context"
	"errors"

	"github.com/redis/go-redis/v9"
	"github.com/redis/go-redis/v9/maintnotifications"
)

// Store 快速计数器的统一入口。排行榜与去重计数器都经由它访问，
// 单 key 上的自增读回由 Redis 串行化，这是幂等判定的唯一依据。
// 计数器与持久化流水分属两套一致性模型，不要合并到同一个存储接口。
type Store interface {
	// IncrRank 排行榜成员加一，返回加后分数
	IncrRank(ctx context.Context, key, member string) (int64, error)
	// RankScore 查询排行榜分数，成员不存在时返回 0
	RankScore(ctx context.Context, key, member string) (int64, error)
	// RankRange 按分数从高到低取 [start, stop] 区间成员
	RankRange(ctx context.Context, key string, start, stop int64) ([]string, error)
	// RankSize 排行榜成员总数
	RankSize(ctx context.Context, key string) (int64, error)

	// IncrHash 去重计数器加一，返回加后的值；值恰为 1 即首次发生
	IncrHash(ctx context.Context, key, field string) (int64, error)
	// HashValue 读取去重计数器当前值，field 不存在时返回 0
	HashValue(ctx context.Context, key, field string) (int64, error)
	// HashSize 去重计数器的 field 数，即去重后的人数
	HashSize(ctx context.Context, key string) (int64, error)

	// PushWithRank 追加评论内容并为对应排行榜加一，同一管道内提交
	PushWithRank(ctx context.Context, listKey, value, rankKey, member string) error
	// ListAll 取整个列表
	ListAll(ctx context.Context, key string) ([]string, error)

	// IncrBalance 用户积分余额加 delta，返回最新余额
	IncrBalance(ctx context.Context, userID string, delta int64) (int64, error)
	// Balance 查询用户积分余额
	Balance(ctx context.Context, userID string) (int64, error)

	Close() error
}

type redisStore struct {
	rdb        *redis.Client
	balanceKey string
}

// New 建立 Redis 连接并返回计数器存储，进程启动时创建、退出时 Close
func New(cfg config.RedisConfig, balanceKey string) (Store, error) {
	rdb := redis.NewClient(&redis.Options{
		Addr:     cfg.Addr,
		Password: cfg.Password,
		DB:       cfg.DB,
		PoolSize: cfg.PoolSize,

		MaintNotificationsConfig: &maintnotifications.Config{
			Mode: maintnotifications.ModeDisabled,
		},
	})

	rdb.AddHook(logger.NewRedisLogger())

	if _, err := rdb.Ping(context.Background()).Result(); err != nil {
		return nil, err
	}

	return &redisStore{rdb: rdb, balanceKey: balanceKey}, nil
}

func (s *redisStore) IncrRank(ctx context.Context, key, member string) (int64, error) {
	score, err := s.rdb.ZIncrBy(ctx, key, 1, member).Result()
	if err != nil {
		return 0, err
	}
	return int64(score), nil
}

func (s *redisStore) RankScore(ctx context.Context, key, member string) (int64, error) {
	score, err := s.rdb.ZScore(ctx, key, member).Result()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return 0, nil
		}
		return 0, err
	}
	return int64(score), nil
}

func (s *redisStore) RankRange(ctx context.Context, key string, start, stop int64) ([]string, error) {
	return s.rdb.ZRevRange(ctx, key, start, stop).Result()
}

func (s *redisStore) RankSize(ctx context.Context, key string) (int64, error) {
	return s.rdb.ZCard(ctx, key).Result()
}

func (s *redisStore) IncrHash(ctx context.Context, key, field string) (int64, error) {
	return s.rdb.HIncrBy(ctx, key, field, 1).Result()
}

func (s *redisStore) HashValue(ctx context.Context, key, field string) (int64, error) {
	val, err := s.rdb.HGet(ctx, key, field).Int64()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return 0, nil
		}
		return 0, err
	}
	return val, nil
}

func (s *redisStore) HashSize(ctx context.Context, key string) (int64, error) {
	return s.rdb.HLen(ctx, key).Result()
}

func (s *redisStore) PushWithRank(ctx context.Context, listKey, value, rankKey, member string) error {
	pipe := s.rdb.TxPipeline()
	pipe.RPush(ctx, listKey, value)
	pipe.ZIncrBy(ctx, rankKey, 1, member)
	_, err := pipe.Exec(ctx)
	return err
}

func (s *redisStore) ListAll(ctx context.Context, key string) ([]string, error) {
	value, err := s.rdb.LRange(ctx, key, 0, -1).Result()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, nil
		}
		return nil, err
	}
	return value, nil
}

func (s *redisStore) IncrBalance(ctx context.Context, userID string, delta int64) (int64, error) {
	return s.rdb.HIncrBy(ctx, s.balanceKey, userID, delta).Result()
}

func (s *redisStore) Balance(ctx context.Context, userID string) (int64, error) {
	val, err := s.rdb.HGet(ctx, s.balanceKey, userID).Int64()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return 0, nil
		}
		return 0, err
	}
	return val, nil
}

func (s *redisStore) Close() error {
	return s.rdb.Close()
}
