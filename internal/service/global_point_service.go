package service

import (
	"Wellspring/internal/api/config"
	"context"
	log "log/slog"
	"time"

	"github.com/go-resty/resty/v2"
)

// GlobalPointService 将余额变动推送到跨应用积分商城。
// 尽力而为：不保证送达，失败只记日志，本应用流水始终以持久化存储为准。
type GlobalPointService interface {
	Propagate(ctx context.Context, userID string, totalPoint int64)
}

type globalPointServiceImpl struct {
	client *resty.Client
}

func NewGlobalPointService(cfg config.BonusMallConfig) GlobalPointService {
	timeout := time.Duration(cfg.Timeout) * time.Second
	if cfg.Timeout <= 0 {
		timeout = 5 * time.Second
	}

	client := resty.New().
		SetBaseURL(cfg.BaseURL).
		SetTimeout(timeout).
		SetRetryCount(1).
		SetHeader("Authorization", "Bearer "+cfg.Token)

	return &globalPointServiceImpl{client: client}
}

func (s *globalPointServiceImpl) Propagate(ctx context.Context, userID string, totalPoint int64) {
	resp, err := s.client.R().
		SetContext(ctx).
		SetBody(map[string]interface{}{
			"userId":     userID,
			"totalPoint": totalPoint,
		}).
		Post("/api/point/sync")

	if err != nil {
		log.ErrorContext(ctx, "propagate balance failed", "user_id", userID, "err", err)
		return
	}
	if resp.IsError() {
		log.ErrorContext(ctx, "propagate balance rejected",
			"user_id", userID, "status", resp.StatusCode())
	}
}
