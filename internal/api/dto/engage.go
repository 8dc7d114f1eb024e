package dto

// EngageReq 浏览/转发上报请求，share_id 为分享人，可为空
type EngageReq struct {
	ShareID string `json:"share_id"`
}

// LikeResultDTO 点赞结果；重复点赞时 Accepted 为 false 且分数不变
type LikeResultDTO struct {
	Accepted   bool  `json:"accepted"`
	ThumbUpNum int64 `json:"thumb_up_num"`
}

// CommentCreateDTO 发表评论请求
type CommentCreateDTO struct {
	NewsID  uint64 `json:"news_id" binding:"required"`
	Comment string `json:"comment" binding:"required,max=500"`
}

// CommentDTO 评论内容，按最新在前返回
type CommentDTO struct {
	UserID      string `json:"userId"`
	UserName    string `json:"userName"`
	HeadImgURL  string `json:"headImgUrl"`
	Comment     string `json:"comment"`
	CommentTime int64  `json:"commentTime"` // 毫秒时间戳
}

// CommentListDTO 评论列表返回包装
type CommentListDTO struct {
	List []*CommentDTO `json:"list"`
}

// NewsMetricsDTO 单条资讯的三类计数
type NewsMetricsDTO struct {
	PV         int64 `json:"pv"`
	ThumbUp    int64 `json:"thumb_up"`
	CommentNum int64 `json:"comment_num"`
}

// ViewAuditDTO 双存储对账：某用户对某资讯的持久化浏览行数与计数器读数。
// 两者不一致说明存在落库失败窗口，差值即漏记的次数
type ViewAuditDTO struct {
	NewsID       uint64 `json:"news_id"`
	UserID       string `json:"user_id"`
	LoggedViews  int64  `json:"logged_views"`
	CountedViews int64  `json:"counted_views"`
}

// RankEntryDTO 榜单单项
type RankEntryDTO struct {
	Member string `json:"member"`
	Score  int64  `json:"score"`
}

// ShareDashboardDTO 分享人当日面板：分类分布、文章分布与去重访客数
type ShareDashboardDTO struct {
	Date       string          `json:"date"`
	ClassBoard []*RankEntryDTO `json:"class_board"`
	NewsBoard  []*RankEntryDTO `json:"news_board"`
	UV         int64           `json:"uv"`
}

// BalanceDTO 用户当前积分余额
type BalanceDTO struct {
	UserID     string `json:"user_id"`
	TotalPoint int64  `json:"total_point"`
}
