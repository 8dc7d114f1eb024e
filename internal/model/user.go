package model

import (
	"time"
)

// User 由登录方写入，本服务只读（分享人信息回查）
type User struct {
	ID         string    `gorm:"primaryKey;type:varchar(64)"`
	UserName   string    `gorm:"type:varchar(64)" json:"userName"`
	HeadImgURL string    `gorm:"type:varchar(512)" json:"headImgUrl"`
	CreatedAt  time.Time `json:"createdAt"`
	UpdatedAt  time.Time `json:"updatedAt"`
}

func (User) TableName() string {
	return "users"
}

// UserIdentity 会话层注入的请求方身份，本服务不创建也不修改
type UserIdentity struct {
	UserID     string `json:"userId"`
	UserName   string `json:"userName"`
	HeadImgURL string `json:"headImgUrl"`
}
