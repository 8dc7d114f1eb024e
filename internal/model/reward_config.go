package model

import (
	"time"
)

// RewardConfig 运营配置的积分数额，主键即操作分类；本服务只读
type RewardConfig struct {
	ID            OperationKind `gorm:"primaryKey"`
	PointNum      int64         `gorm:"not null;default:0" json:"pointNum"`      // 行为人得分
	OtherPointNum int64         `gorm:"not null;default:0" json:"otherPointNum"` // 分享人得分
	Remark        string        `gorm:"type:varchar(255)" json:"remark"`
	UpdatedAt     time.Time     `json:"updatedAt"`
}

func (RewardConfig) TableName() string {
	return "reward_configs"
}
