package model

import (
	"time"
)

// OperationKind 积分操作分类，事件处理开始时一次性判定，不再临时推导
type OperationKind int8

const (
	OpViewSelf         OperationKind = 1 // 本人首次浏览
	OpViewReferred     OperationKind = 2 // 被分享人首次浏览，积分给分享人
	OpTransmitSelf     OperationKind = 3 // 本人首次转发
	OpTransmitReferred OperationKind = 4 // 被分享人首次转发，积分给分享人
)

// PointRecord 积分流水，只追加不修改；ProofID 指向同事务写入的事件行
type PointRecord struct {
	ID             uint64        `gorm:"primaryKey"`
	UserID         string        `gorm:"type:varchar(64);not null;index:idx_user_id" json:"userId"`
	CounterpartyID string        `gorm:"type:varchar(64)" json:"counterpartyId"` // 对方身份，空串表示无
	Operation      OperationKind `gorm:"not null" json:"operation"`
	ChangeNum      int64         `gorm:"not null" json:"changeNum"`
	TotalPoint     int64         `gorm:"not null" json:"totalPoint"`
	NewsID         uint64        `gorm:"not null;index:idx_news_id" json:"newsId"`
	ProofID        uint64        `gorm:"not null" json:"proofId"`
	CreatedAt      time.Time     `json:"createdAt"`
}

func (PointRecord) TableName() string {
	return "point_records"
}
