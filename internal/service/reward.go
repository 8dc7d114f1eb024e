package service

import (
	"Wellspring/internal/model"
	"Wellspring/internal/pkg/counter"
	"Wellspring/internal/repository"
	"context"
	log "log/slog"
	"time"
)

// actionKind 事件动作：浏览或转发
type actionKind int8

const (
	actionView actionKind = iota + 1
	actionTransmit
)

// classifyOperation 在事件处理入口一次性判定操作分类，后续全程透传
func classifyOperation(action actionKind, referred bool) model.OperationKind {
	switch {
	case action == actionView && !referred:
		return model.OpViewSelf
	case action == actionView && referred:
		return model.OpViewReferred
	case action == actionTransmit && !referred:
		return model.OpTransmitSelf
	default:
		return model.OpTransmitReferred
	}
}

// referredKindOf 行为人分类对应的分享人分类
func referredKindOf(action actionKind) model.OperationKind {
	if action == actionView {
		return model.OpViewReferred
	}
	return model.OpTransmitReferred
}

// selfKindOf 行为人入账时记录的分类
func selfKindOf(action actionKind) model.OperationKind {
	if action == actionView {
		return model.OpViewSelf
	}
	return model.OpTransmitSelf
}

// rewardPlan 一次事件的积分配置：行为人与分享人的分值
type rewardPlan struct {
	SelfPoints     int64
	ReferredPoints int64
}

// rewardEngine 积分引擎：查配置、加余额、生成流水行。
// 流水行与事件行由 LedgerRepo 在同一事务落库，此处只负责组装。
type rewardEngine struct {
	cfgRepo  repository.RewardConfigRepo
	counters counter.Store
}

func newRewardEngine(cfgRepo repository.RewardConfigRepo, counters counter.Store) *rewardEngine {
	return &rewardEngine{cfgRepo: cfgRepo, counters: counters}
}

// lookup 读取操作分类对应的积分配置；配置缺失视为零分，不是错误
func (e *rewardEngine) lookup(ctx context.Context, op model.OperationKind) (rewardPlan, error) {
	cfg, err := e.cfgRepo.GetByOperation(ctx, op)
	if err != nil {
		return rewardPlan{}, err
	}
	if cfg == nil {
		return rewardPlan{}, nil
	}
	return rewardPlan{SelfPoints: cfg.PointNum, ReferredPoints: cfg.OtherPointNum}, nil
}

// credit 给受益人加积分并返回待落库的流水行与最新余额。
// 余额先在快速存储中自增，事务随后才提交：事务失败时余额已加而流水缺失，
// 宁可漏记不重复记。
func (e *rewardEngine) credit(
	ctx context.Context,
	beneficiaryID, counterpartyID string,
	op model.OperationKind,
	points int64,
	newsID uint64,
) (*model.PointRecord, int64, error) {
	total, err := e.counters.IncrBalance(ctx, beneficiaryID, points)
	if err != nil {
		log.ErrorContext(ctx, "incr balance failed",
			"user_id", beneficiaryID, "operation", op, "err", err)
		return nil, 0, err
	}

	record := &model.PointRecord{
		UserID:         beneficiaryID,
		CounterpartyID: counterpartyID,
		Operation:      op,
		ChangeNum:      points,
		TotalPoint:     total,
		NewsID:         newsID,
		CreatedAt:      time.Now(),
	}
	return record, total, nil
}
