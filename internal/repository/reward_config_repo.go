package repository

import (
	"Wellspring/internal/model"
	"context"
	"errors"

	"gorm.io/gorm"
)

type RewardConfigRepo interface {
	GetByOperation(ctx context.Context, op model.OperationKind) (*model.RewardConfig, error)
}

type RewardConfigRepoImpl struct {
	db *gorm.DB
}

func NewRewardConfigRepo(db *gorm.DB) RewardConfigRepo {
	return &RewardConfigRepoImpl{db: db}
}

// GetByOperation 配置行缺失时返回 (nil, nil)，上层视为零分、不发积分
func (s *RewardConfigRepoImpl) GetByOperation(ctx context.Context, op model.OperationKind) (*model.RewardConfig, error) {
	cfg := &model.RewardConfig{}
	err := s.db.WithContext(ctx).Where("id = ?", op).First(cfg).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return cfg, nil
}
