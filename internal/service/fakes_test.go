package service

import (
	"Wellspring/internal/model"
	"context"
	"sort"
	"sync"
)

// fakeStore 内存版计数器，测试用。语义与 Redis 实现一致：
// 自增读回、不存在即 0、榜单按分数倒序。
type fakeStore struct {
	mu       sync.Mutex
	ranks    map[string]map[string]int64
	hashes   map[string]map[string]int64
	lists    map[string][]string
	balances map[string]int64
}

func newFakeStore() *fakeStore {
	return &fakeStore{
		ranks:    make(map[string]map[string]int64),
		hashes:   make(map[string]map[string]int64),
		lists:    make(map[string][]string),
		balances: make(map[string]int64),
	}
}

func (f *fakeStore) IncrRank(_ context.Context, key, member string) (int64, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.ranks[key] == nil {
		f.ranks[key] = make(map[string]int64)
	}
	f.ranks[key][member]++
	return f.ranks[key][member], nil
}

func (f *fakeStore) RankScore(_ context.Context, key, member string) (int64, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.ranks[key][member], nil
}

func (f *fakeStore) RankRange(_ context.Context, key string, start, stop int64) ([]string, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	members := make([]string, 0, len(f.ranks[key]))
	for m := range f.ranks[key] {
		members = append(members, m)
	}
	scores := f.ranks[key]
	sort.Slice(members, func(i, j int) bool {
		if scores[members[i]] != scores[members[j]] {
			return scores[members[i]] > scores[members[j]]
		}
		return members[i] > members[j]
	})
	if stop < 0 {
		stop = int64(len(members)) + stop
	}
	if start >= int64(len(members)) {
		return nil, nil
	}
	if stop >= int64(len(members)) {
		stop = int64(len(members)) - 1
	}
	return members[start : stop+1], nil
}

func (f *fakeStore) RankSize(_ context.Context, key string) (int64, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	return int64(len(f.ranks[key])), nil
}

func (f *fakeStore) IncrHash(_ context.Context, key, field string) (int64, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.hashes[key] == nil {
		f.hashes[key] = make(map[string]int64)
	}
	f.hashes[key][field]++
	return f.hashes[key][field], nil
}

func (f *fakeStore) HashValue(_ context.Context, key, field string) (int64, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.hashes[key][field], nil
}

func (f *fakeStore) HashSize(_ context.Context, key string) (int64, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	return int64(len(f.hashes[key])), nil
}

func (f *fakeStore) PushWithRank(_ context.Context, listKey, value, rankKey, member string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.lists[listKey] = append(f.lists[listKey], value)
	if f.ranks[rankKey] == nil {
		f.ranks[rankKey] = make(map[string]int64)
	}
	f.ranks[rankKey][member]++
	return nil
}

func (f *fakeStore) ListAll(_ context.Context, key string) ([]string, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	out := make([]string, len(f.lists[key]))
	copy(out, f.lists[key])
	return out, nil
}

func (f *fakeStore) IncrBalance(_ context.Context, userID string, delta int64) (int64, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.balances[userID] += delta
	return f.balances[userID], nil
}

func (f *fakeStore) Balance(_ context.Context, userID string) (int64, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.balances[userID], nil
}

func (f *fakeStore) Close() error { return nil }

type fakeNewsRepo struct {
	news map[uint64]*model.News
}

func (f *fakeNewsRepo) GetNewsById(_ context.Context, id uint64) (*model.News, error) {
	return f.news[id], nil
}

func (f *fakeNewsRepo) GetNewsByIds(_ context.Context, ids []uint64) ([]*model.News, error) {
	var list []*model.News
	for _, id := range ids {
		if n, ok := f.news[id]; ok {
			list = append(list, n)
		}
	}
	// 打乱顺序模拟 IN 查询不保序
	for i, j := 0, len(list)-1; i < j; i, j = i+1, j-1 {
		list[i], list[j] = list[j], list[i]
	}
	return list, nil
}

func (f *fakeNewsRepo) ListNewest(_ context.Context, category int, limit, offset int) ([]*model.News, error) {
	var ids []uint64
	for id, n := range f.news {
		if category > 0 && n.Category != category {
			continue
		}
		ids = append(ids, id)
	}
	sort.Slice(ids, func(i, j int) bool { return ids[i] > ids[j] })
	var list []*model.News
	for i := offset; i < len(ids) && len(list) < limit; i++ {
		list = append(list, f.news[ids[i]])
	}
	return list, nil
}

func (f *fakeNewsRepo) CountNews(_ context.Context, category int) (int64, error) {
	var count int64
	for _, n := range f.news {
		if category > 0 && n.Category != category {
			continue
		}
		count++
	}
	return count, nil
}

type fakeUserRepo struct {
	users map[string]*model.User
}

func (f *fakeUserRepo) GetUserById(_ context.Context, id string) (*model.User, error) {
	return f.users[id], nil
}

type fakeRewardConfigRepo struct {
	configs map[model.OperationKind]*model.RewardConfig
	err     error
}

func (f *fakeRewardConfigRepo) GetByOperation(_ context.Context, op model.OperationKind) (*model.RewardConfig, error) {
	if f.err != nil {
		return nil, f.err
	}
	return f.configs[op], nil
}

// fakeLedger 内存流水。failWith 非空时事务整体失败，已写入的内容不保留。
type fakeLedger struct {
	mu        sync.Mutex
	failWith  error
	nextID    uint64
	views     []*model.ViewEvent
	transmits []*model.TransmitEvent
	records   []*model.PointRecord
}

func (f *fakeLedger) AppendView(_ context.Context, ev *model.ViewEvent, records []*model.PointRecord) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.failWith != nil {
		return f.failWith
	}
	f.nextID++
	ev.ID = f.nextID
	f.views = append(f.views, ev)
	for _, r := range records {
		r.ProofID = ev.ID
		f.records = append(f.records, r)
	}
	return nil
}

func (f *fakeLedger) AppendTransmit(_ context.Context, ev *model.TransmitEvent, records []*model.PointRecord) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.failWith != nil {
		return f.failWith
	}
	f.nextID++
	ev.ID = f.nextID
	f.transmits = append(f.transmits, ev)
	for _, r := range records {
		r.ProofID = ev.ID
		f.records = append(f.records, r)
	}
	return nil
}

func (f *fakeLedger) GetPointRecords(_ context.Context, userID string, limit, offset int) ([]*model.PointRecord, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var matched []*model.PointRecord
	for i := len(f.records) - 1; i >= 0; i-- {
		if f.records[i].UserID == userID {
			matched = append(matched, f.records[i])
		}
	}
	if offset >= len(matched) {
		return nil, nil
	}
	end := offset + limit
	if end > len(matched) {
		end = len(matched)
	}
	return matched[offset:end], nil
}

func (f *fakeLedger) CountViewEvents(_ context.Context, newsID uint64, viewerID string) (int64, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var count int64
	for _, ev := range f.views {
		if ev.NewsID == newsID && ev.ViewerID == viewerID {
			count++
		}
	}
	return count, nil
}

func (f *fakeLedger) recordsOf(userID string) []*model.PointRecord {
	f.mu.Lock()
	defer f.mu.Unlock()
	var matched []*model.PointRecord
	for _, r := range f.records {
		if r.UserID == userID {
			matched = append(matched, r)
		}
	}
	return matched
}

type fakeMetricRepo struct {
	mu    sync.Mutex
	saved []*model.NewsMetric
}

func (f *fakeMetricRepo) SaveOrUpdateMetric(_ context.Context, metric *model.NewsMetric) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.saved = append(f.saved, metric)
	return nil
}

func (f *fakeMetricRepo) GetMetricsByDays(_ context.Context, newsID uint64, _ int) ([]*model.NewsMetric, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var out []*model.NewsMetric
	for _, m := range f.saved {
		if m.NewsID == newsID {
			out = append(out, m)
		}
	}
	return out, nil
}

type pushedBalance struct {
	UserID     string
	TotalPoint int64
}

// fakePoints 记录异步推送，推送发生在请求返回之后，断言用 Eventually
type fakePoints struct {
	mu     sync.Mutex
	pushed []pushedBalance
}

func (f *fakePoints) Propagate(_ context.Context, userID string, totalPoint int64) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.pushed = append(f.pushed, pushedBalance{UserID: userID, TotalPoint: totalPoint})
}

func (f *fakePoints) pushCount() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.pushed)
}
