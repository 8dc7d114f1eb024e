package job

import (
	"Wellspring/internal/model"
	"Wellspring/internal/pkg/consts"
	"context"
	"sort"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type memStore struct {
	ranks map[string]map[string]int64
}

func (m *memStore) IncrRank(_ context.Context, key, member string) (int64, error) {
	if m.ranks[key] == nil {
		m.ranks[key] = make(map[string]int64)
	}
	m.ranks[key][member]++
	return m.ranks[key][member], nil
}

func (m *memStore) RankScore(_ context.Context, key, member string) (int64, error) {
	return m.ranks[key][member], nil
}

func (m *memStore) RankRange(_ context.Context, key string, start, stop int64) ([]string, error) {
	members := make([]string, 0, len(m.ranks[key]))
	for member := range m.ranks[key] {
		members = append(members, member)
	}
	sort.Slice(members, func(i, j int) bool {
		return m.ranks[key][members[i]] > m.ranks[key][members[j]]
	})
	return members, nil
}

func (m *memStore) RankSize(_ context.Context, key string) (int64, error) {
	return int64(len(m.ranks[key])), nil
}

func (m *memStore) IncrHash(_ context.Context, _, _ string) (int64, error) { return 0, nil }

func (m *memStore) HashValue(_ context.Context, _, _ string) (int64, error) { return 0, nil }

func (m *memStore) HashSize(_ context.Context, _ string) (int64, error) { return 0, nil }

func (m *memStore) PushWithRank(_ context.Context, _, _, _, _ string) error { return nil }

func (m *memStore) ListAll(_ context.Context, _ string) ([]string, error) { return nil, nil }
func (m *memStore) IncrBalance(_ context.Context, _ string, _ int64) (int64, error) {
	return 0, nil
}
func (m *memStore) Balance(_ context.Context, _ string) (int64, error) { return 0, nil }

func (m *memStore) Close() error { return nil }

type memMetricRepo struct {
	saved []*model.NewsMetric
}

func (m *memMetricRepo) SaveOrUpdateMetric(_ context.Context, metric *model.NewsMetric) error {
	m.saved = append(m.saved, metric)
	return nil
}

func (m *memMetricRepo) GetMetricsByDays(_ context.Context, _ uint64, _ int) ([]*model.NewsMetric, error) {
	return nil, nil
}

func TestNewsMetricJob_SnapshotsAllRankedNews(t *testing.T) {
	store := &memStore{ranks: make(map[string]map[string]int64)}
	ctx := context.Background()

	for i := 0; i < 5; i++ {
		_, err := store.IncrRank(ctx, consts.NewsViewRankKey, "7")
		require.NoError(t, err)
	}
	_, err := store.IncrRank(ctx, consts.NewsViewRankKey, "8")
	require.NoError(t, err)
	_, err = store.IncrRank(ctx, consts.NewsLikeRankKey, "7")
	require.NoError(t, err)

	repo := &memMetricRepo{}
	NewNewsMetricJob(store, repo).Run()

	require.Len(t, repo.saved, 2)

	byNews := make(map[uint64]*model.NewsMetric)
	for _, m := range repo.saved {
		byNews[m.NewsID] = m
	}
	require.Contains(t, byNews, uint64(7))
	assert.Equal(t, int64(5), byNews[7].Views)
	assert.Equal(t, int64(1), byNews[7].Likes)
	assert.Zero(t, byNews[7].Comments)
	assert.Equal(t, int64(1), byNews[8].Views)
}
