package model

import (
	"time"
)

// ViewEvent 浏览日志，只追加不修改；每次请求都落一行，与积分是否发放无关
type ViewEvent struct {
	ID             uint64    `gorm:"primaryKey"`
	NewsID         uint64    `gorm:"not null;index:idx_news_id" json:"newsId"`
	Category       int       `gorm:"not null" json:"category"`
	Title          string    `gorm:"type:varchar(255)" json:"title"`
	WriterName     string    `gorm:"type:varchar(64)" json:"writerName"`
	ViewerID       string    `gorm:"type:varchar(64);not null;index:idx_viewer_id" json:"viewerId"`
	ViewerName     string    `gorm:"type:varchar(64)" json:"viewerName"`
	ViewerAvatar   string    `gorm:"type:varchar(512)" json:"viewerAvatar"`
	ReferrerID     string    `gorm:"type:varchar(64);index:idx_referrer_id" json:"referrerId"` // 空串表示无分享人
	ReferrerName   string    `gorm:"type:varchar(64)" json:"referrerName"`
	ReferrerAvatar string    `gorm:"type:varchar(512)" json:"referrerAvatar"`
	CreatedAt      time.Time `json:"createdAt"`
}

func (ViewEvent) TableName() string {
	return "view_events"
}
