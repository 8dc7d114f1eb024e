package service

import (
	"Wellspring/internal/api/dto"
	"Wellspring/internal/model"
	"Wellspring/internal/pkg/consts"
	"Wellspring/internal/pkg/counter"
	"Wellspring/internal/repository"
	"context"
	log "log/slog"
	"strconv"
	"time"

	"github.com/goccy/go-json"
)

// EngageService 互动与积分账本的统一入口。
//
// 一致性模型：快速计数器是"是否首次"的唯一判定依据，持久化流水是审计与
// 余额的记录依据，两者之间没有跨存储事务。计数器自增发生在持久化事务提交
// 之前，若事务失败或进程在两步之间崩溃，计数器已记为"已发放"而流水缺失，
// 表现为漏发一次积分而非重复发放。调用方不得对失败的上报盲目重试，
// 重试不会再次判定首次。
type EngageService interface {
	// RecordView 上报一次浏览。内部失败只记日志不上抛，
	// 仅参数/资讯不存在这类校验错误会返回
	RecordView(ctx context.Context, newsID uint64, viewer model.UserIdentity, shareID string) error
	// RecordTransmit 上报一次转发，契约与 RecordView 对称
	RecordTransmit(ctx context.Context, newsID uint64, sharer model.UserIdentity, shareID string) error

	// Like 点赞；同一用户对同一资讯仅一次，重复时 Accepted=false 且分数不变
	Like(ctx context.Context, newsID uint64, userID string) (*dto.LikeResultDTO, error)
	// Comment 发表评论并返回最新在前的完整评论列表
	Comment(ctx context.Context, newsID uint64, viewer model.UserIdentity, text string) ([]*dto.CommentDTO, error)
	// Comments 最新在前的评论列表
	Comments(ctx context.Context, newsID uint64) ([]*dto.CommentDTO, error)

	// Metrics 浏览/点赞/评论三类计数
	Metrics(ctx context.Context, newsID uint64) (*dto.NewsMetricsDTO, error)
	// HasLiked 用户是否已点赞
	HasLiked(ctx context.Context, newsID uint64, userID string) (bool, error)
	// ViewAudit 对账某用户在某资讯上的持久化行数与计数器读数，
	// 差值暴露落库失败造成的漂移
	ViewAudit(ctx context.Context, newsID uint64, userID string) (*dto.ViewAuditDTO, error)
	// ShareDashboard 分享人某日的分类/文章分布与去重计数器人数；
	// date 形如 20260901，空串取当天
	ShareDashboard(ctx context.Context, userID, date string) (*dto.ShareDashboardDTO, error)
	// Balance 用户当前积分余额
	Balance(ctx context.Context, userID string) (int64, error)
	// PointHistory 用户积分流水，按时间倒序分页
	PointHistory(ctx context.Context, userID string, page, pageSize int) ([]*model.PointRecord, error)
}

type engageServiceImpl struct {
	counters counter.Store
	ledger   repository.LedgerRepo
	newsRepo repository.NewsRepo
	userRepo repository.UserRepo
	rewards  *rewardEngine
	points   GlobalPointService
}

func NewEngageService(
	counters counter.Store,
	ledger repository.LedgerRepo,
	newsRepo repository.NewsRepo,
	userRepo repository.UserRepo,
	cfgRepo repository.RewardConfigRepo,
	points GlobalPointService,
) EngageService {
	return &engageServiceImpl{
		counters: counters,
		ledger:   ledger,
		newsRepo: newsRepo,
		userRepo: userRepo,
		rewards:  newRewardEngine(cfgRepo, counters),
		points:   points,
	}
}

// credited 一次事件中产生的入账，事务提交后逐个异步推送
type credited struct {
	userID string
	total  int64
}

func (s *engageServiceImpl) RecordView(ctx context.Context, newsID uint64, viewer model.UserIdentity, shareID string) error {
	if newsID == 0 || viewer.UserID == "" {
		return ErrParamInvalid
	}
	news, err := s.newsRepo.GetNewsById(ctx, newsID)
	if err != nil {
		return err
	}
	if news == nil {
		return ErrNewsNotFound
	}

	referrer := s.resolveReferrer(ctx, viewer, shareID)
	distinct := referrer != nil && referrer.UserID != viewer.UserID

	newsKey := strconv.FormatUint(newsID, 10)

	// 排行榜只增不减；失败只记日志，不影响事件落库
	if _, err := s.counters.IncrRank(ctx, consts.NewsViewRankKey, newsKey); err != nil {
		log.ErrorContext(ctx, "incr view rank failed", "news_id", newsID, "err", err)
	}
	categoryKey := consts.NewsViewRankKey + ":" + strconv.Itoa(news.Category)
	if _, err := s.counters.IncrRank(ctx, categoryKey, newsKey); err != nil {
		log.ErrorContext(ctx, "incr category view rank failed", "news_id", newsID, "err", err)
	}

	// 首次判定：自增读回恰为 1 即首次。计数器失败时放弃本次积分判定，
	// 事件本身仍然落库
	selfFirst := false
	selfCount, err := s.counters.IncrHash(ctx, consts.NewsViewerLogKey+newsKey, viewer.UserID)
	if err != nil {
		log.ErrorContext(ctx, "incr viewer log failed", "news_id", newsID, "err", err)
	} else {
		selfFirst = selfCount == 1
	}

	referralFirst := false
	if referrer != nil {
		refKey := consts.NewsReferralViewKey + newsKey + ":" + referrer.UserID
		refCount, err := s.counters.IncrHash(ctx, refKey, viewer.UserID)
		if err != nil {
			log.ErrorContext(ctx, "incr referral viewer log failed", "news_id", newsID, "err", err)
		} else {
			referralFirst = refCount == 1
		}
		s.bumpSharerBoards(ctx, referrer.UserID, viewer.UserID, news)
	}

	plan, err := s.rewards.lookup(ctx, classifyOperation(actionView, distinct))
	if err != nil {
		// 配置读不到按零分处理，事件照常落库
		log.ErrorContext(ctx, "lookup reward config failed", "news_id", newsID, "err", err)
		plan = rewardPlan{}
	}

	var records []*model.PointRecord
	var credits []credited

	if selfFirst && plan.SelfPoints > 0 {
		counterpartyID := ""
		if referrer != nil {
			counterpartyID = referrer.UserID
		}
		record, total, err := s.rewards.credit(ctx, viewer.UserID, counterpartyID,
			selfKindOf(actionView), plan.SelfPoints, newsID)
		if err == nil {
			records = append(records, record)
			credits = append(credits, credited{userID: viewer.UserID, total: total})
		}
	}

	if distinct && referralFirst && plan.ReferredPoints > 0 {
		record, total, err := s.rewards.credit(ctx, referrer.UserID, viewer.UserID,
			referredKindOf(actionView), plan.ReferredPoints, newsID)
		if err == nil {
			records = append(records, record)
			credits = append(credits, credited{userID: referrer.UserID, total: total})
		}
	}

	ev := &model.ViewEvent{
		NewsID:       newsID,
		Category:     news.Category,
		Title:        news.Title,
		WriterName:   news.WriterName,
		ViewerID:     viewer.UserID,
		ViewerName:   viewer.UserName,
		ViewerAvatar: viewer.HeadImgURL,
		CreatedAt:    time.Now(),
	}
	if referrer != nil {
		ev.ReferrerID = referrer.UserID
		ev.ReferrerName = referrer.UserName
		ev.ReferrerAvatar = referrer.HeadImgURL
	}

	if err := s.ledger.AppendView(ctx, ev, records); err != nil {
		// 计数器已前移且无法回退，这里不可重试（重试读回必大于 1，
		// 不会再次发放）。漏发一次积分，不会重复发放
		log.ErrorContext(ctx, "append view ledger failed",
			"news_id", newsID, "viewer_id", viewer.UserID, "err", err)
		return nil
	}

	s.propagate(ctx, credits)
	return nil
}

func (s *engageServiceImpl) RecordTransmit(ctx context.Context, newsID uint64, sharer model.UserIdentity, shareID string) error {
	if newsID == 0 || sharer.UserID == "" {
		return ErrParamInvalid
	}
	news, err := s.newsRepo.GetNewsById(ctx, newsID)
	if err != nil {
		return err
	}
	if news == nil {
		return ErrNewsNotFound
	}

	referrer := s.resolveReferrer(ctx, sharer, shareID)
	distinct := referrer != nil && referrer.UserID != sharer.UserID

	newsKey := strconv.FormatUint(newsID, 10)

	// 转发不参与热门排序，只维护去重计数器
	selfFirst := false
	selfCount, err := s.counters.IncrHash(ctx, consts.NewsTransmitLogKey+newsKey, sharer.UserID)
	if err != nil {
		log.ErrorContext(ctx, "incr transmit log failed", "news_id", newsID, "err", err)
	} else {
		selfFirst = selfCount == 1
	}

	referralFirst := false
	if referrer != nil {
		refKey := consts.NewsReferralShareKey + newsKey + ":" + referrer.UserID
		refCount, err := s.counters.IncrHash(ctx, refKey, sharer.UserID)
		if err != nil {
			log.ErrorContext(ctx, "incr referral transmit log failed", "news_id", newsID, "err", err)
		} else {
			referralFirst = refCount == 1
		}
	}

	plan, err := s.rewards.lookup(ctx, classifyOperation(actionTransmit, distinct))
	if err != nil {
		log.ErrorContext(ctx, "lookup reward config failed", "news_id", newsID, "err", err)
		plan = rewardPlan{}
	}

	var records []*model.PointRecord
	var credits []credited

	if selfFirst && plan.SelfPoints > 0 {
		counterpartyID := ""
		if referrer != nil {
			counterpartyID = referrer.UserID
		}
		record, total, err := s.rewards.credit(ctx, sharer.UserID, counterpartyID,
			selfKindOf(actionTransmit), plan.SelfPoints, newsID)
		if err == nil {
			records = append(records, record)
			credits = append(credits, credited{userID: sharer.UserID, total: total})
		}
	}

	if distinct && referralFirst && plan.ReferredPoints > 0 {
		record, total, err := s.rewards.credit(ctx, referrer.UserID, sharer.UserID,
			referredKindOf(actionTransmit), plan.ReferredPoints, newsID)
		if err == nil {
			records = append(records, record)
			credits = append(credits, credited{userID: referrer.UserID, total: total})
		}
	}

	ev := &model.TransmitEvent{
		NewsID:       newsID,
		Category:     news.Category,
		Title:        news.Title,
		WriterName:   news.WriterName,
		SharerID:     sharer.UserID,
		SharerName:   sharer.UserName,
		SharerAvatar: sharer.HeadImgURL,
		CreatedAt:    time.Now(),
	}
	if referrer != nil {
		ev.ReferrerID = referrer.UserID
		ev.ReferrerName = referrer.UserName
		ev.ReferrerAvatar = referrer.HeadImgURL
	}

	if err := s.ledger.AppendTransmit(ctx, ev, records); err != nil {
		log.ErrorContext(ctx, "append transmit ledger failed",
			"news_id", newsID, "sharer_id", sharer.UserID, "err", err)
		return nil
	}

	s.propagate(ctx, credits)
	return nil
}

func (s *engageServiceImpl) Like(ctx context.Context, newsID uint64, userID string) (*dto.LikeResultDTO, error) {
	if newsID == 0 || userID == "" {
		return nil, ErrParamInvalid
	}
	news, err := s.newsRepo.GetNewsById(ctx, newsID)
	if err != nil {
		return nil, err
	}
	if news == nil {
		return nil, ErrNewsNotFound
	}

	newsKey := strconv.FormatUint(newsID, 10)
	count, err := s.counters.IncrHash(ctx, consts.NewsLikeUserKey+newsKey, userID)
	if err != nil {
		return nil, err
	}
	if count > 1 {
		// 重复点赞直接拒绝，点赞榜不加分
		score, err := s.counters.RankScore(ctx, consts.NewsLikeRankKey, newsKey)
		if err != nil {
			return nil, err
		}
		return &dto.LikeResultDTO{Accepted: false, ThumbUpNum: score}, nil
	}

	score, err := s.counters.IncrRank(ctx, consts.NewsLikeRankKey, newsKey)
	if err != nil {
		return nil, err
	}
	return &dto.LikeResultDTO{Accepted: true, ThumbUpNum: score}, nil
}

func (s *engageServiceImpl) Comment(ctx context.Context, newsID uint64, viewer model.UserIdentity, text string) ([]*dto.CommentDTO, error) {
	if newsID == 0 || viewer.UserID == "" || text == "" {
		return nil, ErrParamInvalid
	}
	if len([]rune(text)) > 500 {
		return nil, ErrCommentTooLong
	}
	news, err := s.newsRepo.GetNewsById(ctx, newsID)
	if err != nil {
		return nil, err
	}
	if news == nil {
		return nil, ErrNewsNotFound
	}

	payload := &dto.CommentDTO{
		UserID:      viewer.UserID,
		UserName:    viewer.UserName,
		HeadImgURL:  viewer.HeadImgURL,
		Comment:     text,
		CommentTime: time.Now().UnixMilli(),
	}
	raw, err := json.Marshal(payload)
	if err != nil {
		return nil, err
	}

	newsKey := strconv.FormatUint(newsID, 10)
	err = s.counters.PushWithRank(ctx,
		consts.NewsCommentListKey+newsKey, string(raw),
		consts.NewsCommentRankKey, newsKey)
	if err != nil {
		return nil, err
	}

	return s.Comments(ctx, newsID)
}

func (s *engageServiceImpl) Comments(ctx context.Context, newsID uint64) ([]*dto.CommentDTO, error) {
	if newsID == 0 {
		return nil, ErrParamInvalid
	}

	raws, err := s.counters.ListAll(ctx, consts.NewsCommentListKey+strconv.FormatUint(newsID, 10))
	if err != nil {
		return nil, err
	}

	// 存储为追加序，返回最新在前
	list := make([]*dto.CommentDTO, 0, len(raws))
	for i := len(raws) - 1; i >= 0; i-- {
		item := &dto.CommentDTO{}
		if err := json.Unmarshal([]byte(raws[i]), item); err != nil {
			log.WarnContext(ctx, "broken comment payload skipped", "news_id", newsID, "err", err)
			continue
		}
		list = append(list, item)
	}
	return list, nil
}

func (s *engageServiceImpl) Metrics(ctx context.Context, newsID uint64) (*dto.NewsMetricsDTO, error) {
	if newsID == 0 {
		return nil, ErrParamInvalid
	}

	newsKey := strconv.FormatUint(newsID, 10)
	pv, err := s.counters.RankScore(ctx, consts.NewsViewRankKey, newsKey)
	if err != nil {
		return nil, err
	}
	thumbUp, err := s.counters.RankScore(ctx, consts.NewsLikeRankKey, newsKey)
	if err != nil {
		return nil, err
	}
	commentNum, err := s.counters.RankScore(ctx, consts.NewsCommentRankKey, newsKey)
	if err != nil {
		return nil, err
	}

	return &dto.NewsMetricsDTO{PV: pv, ThumbUp: thumbUp, CommentNum: commentNum}, nil
}

func (s *engageServiceImpl) HasLiked(ctx context.Context, newsID uint64, userID string) (bool, error) {
	if newsID == 0 || userID == "" {
		return false, nil
	}
	count, err := s.counters.HashValue(ctx, consts.NewsLikeUserKey+strconv.FormatUint(newsID, 10), userID)
	if err != nil {
		return false, err
	}
	return count > 0, nil
}

func (s *engageServiceImpl) ViewAudit(ctx context.Context, newsID uint64, userID string) (*dto.ViewAuditDTO, error) {
	if newsID == 0 || userID == "" {
		return nil, ErrParamInvalid
	}

	logged, err := s.ledger.CountViewEvents(ctx, newsID, userID)
	if err != nil {
		return nil, err
	}
	counted, err := s.counters.HashValue(ctx, consts.NewsViewerLogKey+strconv.FormatUint(newsID, 10), userID)
	if err != nil {
		return nil, err
	}

	return &dto.ViewAuditDTO{
		NewsID:       newsID,
		UserID:       userID,
		LoggedViews:  logged,
		CountedViews: counted,
	}, nil
}

func (s *engageServiceImpl) ShareDashboard(ctx context.Context, userID, date string) (*dto.ShareDashboardDTO, error) {
	if userID == "" {
		return nil, ErrParamInvalid
	}
	if date == "" {
		date = time.Now().Format("20060102")
	}

	classBoard, err := s.rankEntries(ctx, consts.SharerDailyClassKey+userID+":"+date)
	if err != nil {
		return nil, err
	}
	newsBoard, err := s.rankEntries(ctx, consts.SharerDailyNewsKey+userID+":"+date)
	if err != nil {
		return nil, err
	}
	uv, err := s.counters.HashSize(ctx, consts.SharerDailyUVKey+userID+":"+date)
	if err != nil {
		return nil, err
	}

	return &dto.ShareDashboardDTO{
		Date:       date,
		ClassBoard: classBoard,
		NewsBoard:  newsBoard,
		UV:         uv,
	}, nil
}

func (s *engageServiceImpl) rankEntries(ctx context.Context, key string) ([]*dto.RankEntryDTO, error) {
	members, err := s.counters.RankRange(ctx, key, 0, -1)
	if err != nil {
		return nil, err
	}
	entries := make([]*dto.RankEntryDTO, 0, len(members))
	for _, member := range members {
		score, err := s.counters.RankScore(ctx, key, member)
		if err != nil {
			return nil, err
		}
		entries = append(entries, &dto.RankEntryDTO{Member: member, Score: score})
	}
	return entries, nil
}

func (s *engageServiceImpl) Balance(ctx context.Context, userID string) (int64, error) {
	if userID == "" {
		return 0, ErrParamInvalid
	}
	return s.counters.Balance(ctx, userID)
}

func (s *engageServiceImpl) PointHistory(ctx context.Context, userID string, page, pageSize int) ([]*model.PointRecord, error) {
	if userID == "" {
		return nil, ErrParamInvalid
	}
	if page < 1 {
		page = 1
	}
	if pageSize < 1 {
		pageSize = 20
	}
	return s.ledger.GetPointRecords(ctx, userID, pageSize, (page-1)*pageSize)
}

// resolveReferrer 解析分享人身份。share_id 为空表示无分享；等于行为人时
// 沿用行为人身份（后续分类仍按"本人"处理）；查不到对应用户时降级为无分享，
// 不让整个事件失败
func (s *engageServiceImpl) resolveReferrer(ctx context.Context, actor model.UserIdentity, shareID string) *model.UserIdentity {
	if shareID == "" {
		return nil
	}
	if shareID == actor.UserID {
		identity := actor
		return &identity
	}

	user, err := s.userRepo.GetUserById(ctx, shareID)
	if err != nil {
		log.WarnContext(ctx, "referrer lookup failed, attribution dropped",
			"share_id", shareID, "err", err)
		return nil
	}
	if user == nil {
		return nil
	}
	return &model.UserIdentity{UserID: user.ID, UserName: user.UserName, HeadImgURL: user.HeadImgURL}
}

// bumpSharerBoards 分享人当日面板：分类榜、文章榜与去重访客数
func (s *engageServiceImpl) bumpSharerBoards(ctx context.Context, sharerID, viewerID string, news *model.News) {
	today := time.Now().Format("20060102")
	newsKey := strconv.FormatUint(news.ID, 10)

	if _, err := s.counters.IncrRank(ctx, consts.SharerDailyClassKey+sharerID+":"+today, strconv.Itoa(news.Category)); err != nil {
		log.WarnContext(ctx, "bump sharer class board failed", "sharer_id", sharerID, "err", err)
	}
	if _, err := s.counters.IncrRank(ctx, consts.SharerDailyNewsKey+sharerID+":"+today, newsKey); err != nil {
		log.WarnContext(ctx, "bump sharer news board failed", "sharer_id", sharerID, "err", err)
	}
	if _, err := s.counters.IncrHash(ctx, consts.SharerDailyUVKey+sharerID+":"+today, viewerID); err != nil {
		log.WarnContext(ctx, "bump sharer uv failed", "sharer_id", sharerID, "err", err)
	}
}

// propagate 事务提交后异步推送余额，不阻塞当前请求
func (s *engageServiceImpl) propagate(ctx context.Context, credits []credited) {
	for _, c := range credits {
		go func(userID string, total int64) {
			s.points.Propagate(context.WithoutCancel(ctx), userID, total)
		}(c.userID, c.total)
	}
}
