package service

import (
	"Wellspring/internal/api/config"
	"Wellspring/internal/api/dto"
	"Wellspring/internal/model"
	"Wellspring/internal/pkg/consts"
	"Wellspring/internal/pkg/counter"
	"Wellspring/internal/pkg/util"
	"Wellspring/internal/repository"
	"context"
	"fmt"
	log "log/slog"
	"strconv"

	"github.com/jinzhu/copier"
	"golang.org/x/sync/errgroup"
)

type NewsService interface {
	// GetNewsList 列表页。order 取 consts.OrderHot / consts.OrderNew，
	// category 为 consts.ContextTotal 时不限分类
	GetNewsList(ctx context.Context, category, order, page int) (*dto.NewsListDTO, error)
	// GetNewsDetail 详情页，顺带上报一次浏览。kind 与资讯实际类型
	// 不符时拒绝，图文与自测题各走各的路由
	GetNewsDetail(ctx context.Context, newsID uint64, kind int8, viewer model.UserIdentity, shareID string) (*dto.NewsDetailDTO, error)
	// GetTrend 最近 N 天的每日热度快照，由定时任务落库
	GetTrend(ctx context.Context, newsID uint64, days int) ([]*model.NewsMetric, error)
}

type NewsServiceImpl struct {
	newsRepo   repository.NewsRepo
	metricRepo repository.NewsMetricRepo
	counters   counter.Store
	engage     EngageService
	host       string
}

func NewNewsService(
	newsRepo repository.NewsRepo,
	metricRepo repository.NewsMetricRepo,
	counters counter.Store,
	engage EngageService,
	cfg *config.Config,
) NewsService {
	return &NewsServiceImpl{
		newsRepo:   newsRepo,
		metricRepo: metricRepo,
		counters:   counters,
		engage:     engage,
		host:       cfg.Server.Host,
	}
}

func (s *NewsServiceImpl) GetNewsList(ctx context.Context, category, order, page int) (*dto.NewsListDTO, error) {
	if page < 1 {
		page = 1
	}
	if order != consts.OrderHot && order != consts.OrderNew {
		return nil, ErrParamInvalid
	}

	if order == consts.OrderHot {
		return s.hotList(ctx, category, page)
	}
	return s.newestList(ctx, category, page)
}

// hotList 按浏览榜取一页。榜单为空（冷启动或 Redis 刚清空）时退回最新列表，
// 保证列表页始终有内容
func (s *NewsServiceImpl) hotList(ctx context.Context, category, page int) (*dto.NewsListDTO, error) {
	rankKey := consts.NewsViewRankKey
	if category != consts.ContextTotal {
		rankKey = consts.NewsViewRankKey + ":" + strconv.Itoa(category)
	}

	size, err := s.counters.RankSize(ctx, rankKey)
	if err != nil {
		return nil, err
	}
	if size == 0 {
		return s.newestList(ctx, category, page)
	}

	start := int64(page-1) * consts.PageSize
	members, err := s.counters.RankRange(ctx, rankKey, start, start+consts.PageSize-1)
	if err != nil {
		return nil, err
	}

	ids, err := util.StrSliceToUInt64Slice(members)
	if err != nil {
		return nil, err
	}

	newsList, err := s.newsRepo.GetNewsByIds(ctx, ids)
	if err != nil {
		return nil, err
	}

	// Find 不保证顺序，按榜单顺序重排
	byID := make(map[uint64]*model.News, len(newsList))
	for _, n := range newsList {
		byID[n.ID] = n
	}
	ordered := make([]*model.News, 0, len(ids))
	for _, id := range ids {
		if n, ok := byID[id]; ok {
			ordered = append(ordered, n)
		}
	}

	items, err := s.decorate(ctx, ordered)
	if err != nil {
		return nil, err
	}
	return &dto.NewsListDTO{List: items, TotalPage: totalPages(size)}, nil
}

func (s *NewsServiceImpl) newestList(ctx context.Context, category, page int) (*dto.NewsListDTO, error) {
	count, err := s.newsRepo.CountNews(ctx, category)
	if err != nil {
		return nil, err
	}
	newsList, err := s.newsRepo.ListNewest(ctx, category, consts.PageSize, (page-1)*consts.PageSize)
	if err != nil {
		return nil, err
	}
	items, err := s.decorate(ctx, newsList)
	if err != nil {
		return nil, err
	}
	return &dto.NewsListDTO{List: items, TotalPage: totalPages(count)}, nil
}

// decorate 补齐每条资讯的跳转地址与三项计数，计数并发拉取
func (s *NewsServiceImpl) decorate(ctx context.Context, newsList []*model.News) ([]*dto.NewsItemDTO, error) {
	items := make([]*dto.NewsItemDTO, len(newsList))
	eg, egCtx := errgroup.WithContext(ctx)

	for i, news := range newsList {
		eg.Go(func() error {
			item := &dto.NewsItemDTO{}
			if err := copier.Copy(item, news); err != nil {
				return err
			}
			item.NewsID = news.ID
			item.CreatedAt = news.CreatedAt.Format("2006-01-02 15:04:05")
			item.RedirectURL = s.redirectURL(news)

			metrics, err := s.engage.Metrics(egCtx, news.ID)
			if err != nil {
				return err
			}
			item.PV = metrics.PV
			item.ThumbUp = metrics.ThumbUp
			item.CommentNum = metrics.CommentNum

			items[i] = item
			return nil
		})
	}

	if err := eg.Wait(); err != nil {
		return nil, err
	}
	return items, nil
}

func (s *NewsServiceImpl) GetNewsDetail(ctx context.Context, newsID uint64, kind int8, viewer model.UserIdentity, shareID string) (*dto.NewsDetailDTO, error) {
	if newsID == 0 {
		return nil, ErrParamInvalid
	}
	news, err := s.newsRepo.GetNewsById(ctx, newsID)
	if err != nil {
		return nil, err
	}
	if news == nil {
		return nil, ErrNewsNotFound
	}
	if news.Kind != kind {
		return nil, ErrNewsKindMismatch
	}

	detail := &dto.NewsDetailDTO{}
	if err := copier.Copy(detail, news); err != nil {
		return nil, err
	}
	detail.NewsID = news.ID
	detail.CreatedAt = news.CreatedAt.Format("2006-01-02 15:04:05")
	// 二次分享沿用传入的 share_id，让链路回到最初的分享人
	sharerID := shareID
	if sharerID == "" {
		sharerID = viewer.UserID
	}
	detail.ShareLink = s.shareLink(news, sharerID)

	eg, egCtx := errgroup.WithContext(ctx)
	eg.Go(func() error {
		metrics, err := s.engage.Metrics(egCtx, newsID)
		if err != nil {
			return err
		}
		detail.PV = metrics.PV
		detail.ThumbUp = metrics.ThumbUp
		detail.CommentNum = metrics.CommentNum
		return nil
	})
	eg.Go(func() error {
		liked, err := s.engage.HasLiked(egCtx, newsID, viewer.UserID)
		if err != nil {
			return err
		}
		detail.IfThumb = liked
		return nil
	})
	eg.Go(func() error {
		comments, err := s.engage.Comments(egCtx, newsID)
		if err != nil {
			return err
		}
		detail.CommentList = comments
		return nil
	})
	if err := eg.Wait(); err != nil {
		return nil, err
	}

	// 浏览上报不阻塞详情返回，失败只在内部记日志
	if viewer.UserID != "" {
		go func() {
			if err := s.engage.RecordView(context.WithoutCancel(ctx), newsID, viewer, shareID); err != nil {
				log.Error("record view on detail failed", "news_id", newsID, "err", err)
			}
		}()
	}

	return detail, nil
}

func (s *NewsServiceImpl) GetTrend(ctx context.Context, newsID uint64, days int) ([]*model.NewsMetric, error) {
	if newsID == 0 {
		return nil, ErrParamInvalid
	}
	if days < 1 || days > 90 {
		days = 7
	}
	return s.metricRepo.GetMetricsByDays(ctx, newsID, days)
}

// redirectURL 按资讯类型拼接前端跳转地址，自测题走独立页面
func (s *NewsServiceImpl) redirectURL(news *model.News) string {
	if news.Kind == consts.NewsKindSelfTest {
		return fmt.Sprintf("%s/selftest?news_id=%d", s.host, news.ID)
	}
	return fmt.Sprintf("%s/news/detail?news_id=%d", s.host, news.ID)
}

// shareLink 带分享人标识的详情链接，落地后 share_id 原样回传上报接口
func (s *NewsServiceImpl) shareLink(news *model.News, userID string) string {
	if userID == "" {
		return s.redirectURL(news)
	}
	return fmt.Sprintf("%s&share_id=%s", s.redirectURL(news), userID)
}

func totalPages(count int64) int64 {
	return (count + consts.PageSize - 1) / consts.PageSize
}
