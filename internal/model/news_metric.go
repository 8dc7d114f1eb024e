package model

import (
	"time"
)

// NewsMetric 每日热度快照，由定时任务从计数器落库，供离线报表使用
type NewsMetric struct {
	ID         uint64    `gorm:"primaryKey"`
	NewsID     uint64    `gorm:"not null;index:idx_news_date,unique" json:"newsId"`
	MetricDate time.Time `gorm:"not null;index:idx_news_date,unique;column:metric_date" json:"metricDate"`
	Views      int64     `gorm:"not null;default:0" json:"views"`
	Likes      int64     `gorm:"not null;default:0" json:"likes"`
	Comments   int64     `gorm:"not null;default:0" json:"comments"`
	CreatedAt  time.Time `json:"createdAt"`
}

func (NewsMetric) TableName() string {
	return "news_metrics"
}
