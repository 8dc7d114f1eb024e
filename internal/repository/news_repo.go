package repository

import (
	"Wellspring/internal/model"
	"context"
	"errors"

	"gorm.io/gorm"
)

type NewsRepo interface {
	GetNewsById(ctx context.Context, id uint64) (*model.News, error)
	GetNewsByIds(ctx context.Context, ids []uint64) ([]*model.News, error)
	ListNewest(ctx context.Context, category int, limit, offset int) ([]*model.News, error)
	CountNews(ctx context.Context, category int) (int64, error)
}

type NewsRepoImpl struct {
	db *gorm.DB
}

func NewNewsRepo(db *gorm.DB) NewsRepo {
	return &NewsRepoImpl{db: db}
}

func (s *NewsRepoImpl) GetNewsById(ctx context.Context, id uint64) (*model.News, error) {
	news := &model.News{}
	err := s.db.WithContext(ctx).First(news, id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return news, nil
}

func (s *NewsRepoImpl) GetNewsByIds(ctx context.Context, ids []uint64) ([]*model.News, error) {
	var list []*model.News
	err := s.db.WithContext(ctx).Where("id IN ?", ids).Find(&list).Error
	return list, err
}

// ListNewest 按发布时间倒序分页
func (s *NewsRepoImpl) ListNewest(ctx context.Context, category int, limit, offset int) ([]*model.News, error) {
	var list []*model.News
	query := s.db.WithContext(ctx).Order("id DESC").Limit(limit).Offset(offset)
	if category > 0 {
		query = query.Where("category = ?", category)
	}
	err := query.Find(&list).Error
	return list, err
}

func (s *NewsRepoImpl) CountNews(ctx context.Context, category int) (int64, error) {
	var count int64
	query := s.db.WithContext(ctx).Model(&model.News{})
	if category > 0 {
		query = query.Where("category = ?", category)
	}
	err := query.Count(&count).Error
	return count, err
}
