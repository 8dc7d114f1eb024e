package model

import (
	"time"
)

type News struct {
	ID           uint64    `gorm:"primaryKey"`
	Category     int       `gorm:"not null;index:idx_category" json:"category"`
	Kind         int8      `gorm:"not null;default:1" json:"kind"` // 1:图文资讯, 2:自测题
	Title        string    `gorm:"type:varchar(255);not null" json:"title"`
	Introduction string    `gorm:"type:varchar(512)" json:"introduction"`
	Content      string    `gorm:"type:text" json:"content"`
	ImgURL       string    `gorm:"type:varchar(512)" json:"imgUrl"`
	WriterName   string    `gorm:"type:varchar(64)" json:"writerName"`
	CreatedAt    time.Time `json:"createdAt"`
	UpdatedAt    time.Time `json:"updatedAt"`
}

func (News) TableName() string {
	return "news"
}
