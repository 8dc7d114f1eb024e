package job

import (
	"Wellspring/internal/model"
	"Wellspring/internal/pkg/consts"
	"Wellspring/internal/pkg/counter"
	"Wellspring/internal/pkg/logger"
	"Wellspring/internal/pkg/util"
	"Wellspring/internal/repository"
	"context"
	log "log/slog"
	"time"

	"github.com/google/uuid"
)

// NewsMetricJob 每日把浏览/点赞/评论榜的分数快照落库。
// 榜单是累计值，快照取当日终值，报表侧做差得到日增量。
type NewsMetricJob struct {
	counters   counter.Store
	metricRepo repository.NewsMetricRepo
}

func NewNewsMetricJob(counters counter.Store, metricRepo repository.NewsMetricRepo) *NewsMetricJob {
	return &NewsMetricJob{
		counters:   counters,
		metricRepo: metricRepo,
	}
}

func (s *NewsMetricJob) Run() {
	traceID := "job-news-" + uuid.NewString()
	ctx := context.WithValue(context.Background(), logger.TraceIDKey, traceID)

	members, err := s.counters.RankRange(ctx, consts.NewsViewRankKey, 0, -1)
	if err != nil {
		log.ErrorContext(ctx, "get view rank members error", "err", err)
		return
	}

	newsIDs, err := util.StrSliceToUInt64Slice(members)
	if err != nil {
		log.ErrorContext(ctx, "convert rank members error", "err", err)
		return
	}

	today := time.Now().Truncate(24 * time.Hour)
	saved := 0

	for i, nid := range newsIDs {
		views, err := s.counters.RankScore(ctx, consts.NewsViewRankKey, members[i])
		if err != nil {
			log.ErrorContext(ctx, "get view score error", "news_id", nid, "err", err)
			continue
		}
		likes, err := s.counters.RankScore(ctx, consts.NewsLikeRankKey, members[i])
		if err != nil {
			log.ErrorContext(ctx, "get like score error", "news_id", nid, "err", err)
			continue
		}
		comments, err := s.counters.RankScore(ctx, consts.NewsCommentRankKey, members[i])
		if err != nil {
			log.ErrorContext(ctx, "get comment score error", "news_id", nid, "err", err)
			continue
		}

		err = s.metricRepo.SaveOrUpdateMetric(ctx, &model.NewsMetric{
			NewsID:     nid,
			MetricDate: today,
			Views:      views,
			Likes:      likes,
			Comments:   comments,
		})
		if err != nil {
			log.ErrorContext(ctx, "save news metric error", "news_id", nid, "err", err)
			continue
		}
		saved++
	}

	log.InfoContext(ctx, "sync news metrics success",
		"news_count", len(newsIDs), "saved", saved)
}
