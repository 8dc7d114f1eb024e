package model

import (
	"time"
)

// TransmitEvent 转发日志，结构与浏览日志对称
type TransmitEvent struct {
	ID             uint64    `gorm:"primaryKey"`
	NewsID         uint64    `gorm:"not null;index:idx_news_id" json:"newsId"`
	Category       int       `gorm:"not null" json:"category"`
	Title          string    `gorm:"type:varchar(255)" json:"title"`
	WriterName     string    `gorm:"type:varchar(64)" json:"writerName"`
	SharerID       string    `gorm:"type:varchar(64);not null;index:idx_sharer_id" json:"sharerId"`
	SharerName     string    `gorm:"type:varchar(64)" json:"sharerName"`
	SharerAvatar   string    `gorm:"type:varchar(512)" json:"sharerAvatar"`
	ReferrerID     string    `gorm:"type:varchar(64);index:idx_referrer_id" json:"referrerId"`
	ReferrerName   string    `gorm:"type:varchar(64)" json:"referrerName"`
	ReferrerAvatar string    `gorm:"type:varchar(512)" json:"referrerAvatar"`
	CreatedAt      time.Time `json:"createdAt"`
}

func (TransmitEvent) TableName() string {
	return "transmit_events"
}
