package repository

import (
	"Wellspring/internal/model"
	"context"

	"gorm.io/gorm"
)

// LedgerRepo 持久化流水：事件行与积分行在同一事务内落库，
// 每条积分行的 ProofID 指向同批写入的事件行。事务失败时整体回滚，
// 但此前已经加过的快速计数器不会回退（见 engage service 的一致性说明）。
type LedgerRepo interface {
	AppendView(ctx context.Context, ev *model.ViewEvent, records []*model.PointRecord) error
	AppendTransmit(ctx context.Context, ev *model.TransmitEvent, records []*model.PointRecord) error
	GetPointRecords(ctx context.Context, userID string, limit, offset int) ([]*model.PointRecord, error)
	CountViewEvents(ctx context.Context, newsID uint64, viewerID string) (int64, error)
}

type LedgerRepoImpl struct {
	db *gorm.DB
}

func NewLedgerRepo(db *gorm.DB) LedgerRepo {
	return &LedgerRepoImpl{db: db}
}

func (s *LedgerRepoImpl) AppendView(ctx context.Context, ev *model.ViewEvent, records []*model.PointRecord) error {
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(ev).Error; err != nil {
			return err
		}
		for _, r := range records {
			r.ProofID = ev.ID
			if err := tx.Create(r).Error; err != nil {
				return err
			}
		}
		return nil
	})
}

func (s *LedgerRepoImpl) AppendTransmit(ctx context.Context, ev *model.TransmitEvent, records []*model.PointRecord) error {
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(ev).Error; err != nil {
			return err
		}
		for _, r := range records {
			r.ProofID = ev.ID
			if err := tx.Create(r).Error; err != nil {
				return err
			}
		}
		return nil
	})
}

// GetPointRecords 按时间倒序分页查询用户积分流水
func (s *LedgerRepoImpl) GetPointRecords(ctx context.Context, userID string, limit, offset int) ([]*model.PointRecord, error) {
	var records []*model.PointRecord
	err := s.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("id DESC").
		Limit(limit).Offset(offset).
		Find(&records).Error
	return records, err
}

func (s *LedgerRepoImpl) CountViewEvents(ctx context.Context, newsID uint64, viewerID string) (int64, error) {
	var count int64
	err := s.db.WithContext(ctx).Model(&model.ViewEvent{}).
		Where("news_id = ? AND viewer_id = ?", newsID, viewerID).
		Count(&count).Error
	return count, err
}
