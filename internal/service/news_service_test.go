package service

import (
	"Wellspring/internal/api/config"
	"Wellspring/internal/model"
	"Wellspring/internal/pkg/consts"
	"context"
	"strconv"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newNewsFixture() (*engageFixture, NewsService) {
	f := newEngageFixture()
	for i := uint64(1); i <= 5; i++ {
		f.news.news[i] = &model.News{
			ID:       i,
			Category: 3,
			Kind:     consts.NewsKindArticle,
			Title:    "资讯" + strconv.FormatUint(i, 10),
		}
	}
	cfg := &config.Config{Server: config.ServerConfig{Host: "https://example.com"}}
	return f, NewNewsService(f.news, &fakeMetricRepo{}, f.store, f.svc, cfg)
}

func TestGetNewsList_HotOrderFollowsViewRank(t *testing.T) {
	f, svc := newNewsFixture()
	ctx := context.Background()

	// 3 比 1 热，1 比 5 热
	for i := 0; i < 3; i++ {
		_, err := f.store.IncrRank(ctx, consts.NewsViewRankKey, "3")
		require.NoError(t, err)
	}
	for i := 0; i < 2; i++ {
		_, err := f.store.IncrRank(ctx, consts.NewsViewRankKey, "1")
		require.NoError(t, err)
	}
	_, err := f.store.IncrRank(ctx, consts.NewsViewRankKey, "5")
	require.NoError(t, err)

	list, err := svc.GetNewsList(ctx, consts.ContextTotal, consts.OrderHot, 1)
	require.NoError(t, err)
	require.Len(t, list.List, 3)
	assert.Equal(t, uint64(3), list.List[0].NewsID)
	assert.Equal(t, uint64(1), list.List[1].NewsID)
	assert.Equal(t, uint64(5), list.List[2].NewsID)
	assert.Equal(t, int64(3), list.List[0].PV)
	assert.Equal(t, int64(1), list.TotalPage)
}

func TestGetNewsList_HotFallsBackToNewestWhenRankEmpty(t *testing.T) {
	_, svc := newNewsFixture()

	list, err := svc.GetNewsList(context.Background(), consts.ContextTotal, consts.OrderHot, 1)
	require.NoError(t, err)
	require.NotEmpty(t, list.List)
	// 空榜退回最新列表：id 倒序
	assert.Equal(t, uint64(8), list.List[0].NewsID)
}

func TestGetNewsList_NewestOrder(t *testing.T) {
	_, svc := newNewsFixture()

	list, err := svc.GetNewsList(context.Background(), consts.ContextTotal, consts.OrderNew, 1)
	require.NoError(t, err)
	require.True(t, len(list.List) >= 2)
	assert.Greater(t, list.List[0].NewsID, list.List[1].NewsID)
}

func TestGetNewsList_CategoryFilter(t *testing.T) {
	_, svc := newNewsFixture()

	list, err := svc.GetNewsList(context.Background(), 3, consts.OrderNew, 1)
	require.NoError(t, err)
	require.NotEmpty(t, list.List)
	for _, item := range list.List {
		assert.Equal(t, 3, item.Category)
	}
}

func TestGetNewsList_InvalidOrder(t *testing.T) {
	_, svc := newNewsFixture()

	_, err := svc.GetNewsList(context.Background(), consts.ContextTotal, 99, 1)
	assert.ErrorIs(t, err, ErrParamInvalid)
}

func TestGetNewsDetail_ShareLinkAndCounts(t *testing.T) {
	f, svc := newNewsFixture()
	ctx := context.Background()

	_, err := f.svc.Like(ctx, 7, "U1")
	require.NoError(t, err)
	_, err = f.svc.Comment(ctx, 7, identity("U2"), "写得好")
	require.NoError(t, err)

	detail, err := svc.GetNewsDetail(ctx, 7, consts.NewsKindArticle, identity("U1"), "")
	require.NoError(t, err)

	assert.Equal(t, uint64(7), detail.NewsID)
	assert.True(t, detail.IfThumb)
	require.Len(t, detail.CommentList, 1)
	assert.Equal(t, "写得好", detail.CommentList[0].Comment)
	assert.Equal(t, "https://example.com/news/detail?news_id=7&share_id=U1", detail.ShareLink)

	// 详情页异步上报浏览
	assert.Eventually(t, func() bool {
		score, _ := f.store.RankScore(ctx, consts.NewsViewRankKey, "7")
		return score == 1
	}, time.Second, 10*time.Millisecond)
}

func TestGetNewsDetail_SelfTestRedirect(t *testing.T) {
	_, svc := newNewsFixture()

	detail, err := svc.GetNewsDetail(context.Background(), 8, consts.NewsKindSelfTest, model.UserIdentity{}, "")
	require.NoError(t, err)
	assert.Equal(t, consts.NewsKindSelfTest, detail.Kind)
	// 匿名访问分享链接不带 share_id
	assert.Equal(t, "https://example.com/selftest?news_id=8", detail.ShareLink)
	assert.False(t, detail.IfThumb)
}

func TestGetNewsDetail_KindMismatchRejected(t *testing.T) {
	_, svc := newNewsFixture()
	ctx := context.Background()

	// 图文路由不出自测题
	_, err := svc.GetNewsDetail(ctx, 8, consts.NewsKindArticle, identity("U1"), "")
	assert.ErrorIs(t, err, ErrNewsKindMismatch)

	// 自测题路由也不出图文
	_, err = svc.GetNewsDetail(ctx, 7, consts.NewsKindSelfTest, identity("U1"), "")
	assert.ErrorIs(t, err, ErrNewsKindMismatch)
}

func TestGetNewsDetail_ShareLinkKeepsIncomingSharer(t *testing.T) {
	_, svc := newNewsFixture()

	// U1 经 U2 的链接打开，再分享出去仍归 U2
	detail, err := svc.GetNewsDetail(context.Background(), 7, consts.NewsKindArticle, identity("U1"), "U2")
	require.NoError(t, err)
	assert.Equal(t, "https://example.com/news/detail?news_id=7&share_id=U2", detail.ShareLink)
}

func TestGetNewsDetail_Missing(t *testing.T) {
	_, svc := newNewsFixture()

	_, err := svc.GetNewsDetail(context.Background(), 999, consts.NewsKindArticle, identity("U1"), "")
	assert.ErrorIs(t, err, ErrNewsNotFound)
}
