package repository

import (
	"Wellspring/internal/model"
	"context"
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type NewsMetricRepo interface {
	SaveOrUpdateMetric(ctx context.Context, metric *model.NewsMetric) error
	GetMetricsByDays(ctx context.Context, newsID uint64, days int) ([]*model.NewsMetric, error)
}

type newsMetricRepoImpl struct {
	db *gorm.DB
}

func NewNewsMetricRepo(db *gorm.DB) NewsMetricRepo {
	return &newsMetricRepoImpl{db: db}
}

// SaveOrUpdateMetric 采用 Upsert 逻辑。如果 news_id + metric_date 已存在，则更新各项数值
func (r *newsMetricRepoImpl) SaveOrUpdateMetric(ctx context.Context, metric *model.NewsMetric) error {
	return r.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns: []clause.Column{{Name: "news_id"}, {Name: "metric_date"}},
		DoUpdates: clause.AssignmentColumns([]string{
			"views",
			"likes",
			"comments",
		}),
	}).Create(metric).Error
}

// GetMetricsByDays 获取资讯最近 N 天的趋势数据
func (r *newsMetricRepoImpl) GetMetricsByDays(ctx context.Context, newsID uint64, days int) ([]*model.NewsMetric, error) {
	metrics := make([]*model.NewsMetric, 0)
	result := r.db.WithContext(ctx).
		Where("news_id = ?", newsID).
		Where("metric_date >= ?", time.Now().AddDate(0, 0, -days)).
		Order("metric_date ASC").
		Find(&metrics)
	if result.Error != nil {
		return nil, result.Error
	}
	return metrics, nil
}
