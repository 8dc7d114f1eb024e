package consts

// 排行榜（zset member=newsId score=累计次数，只增不减）
const (
	NewsViewRankKey    = "news:rank:view"
	NewsLikeRankKey    = "news:rank:like"
	NewsCommentRankKey = "news:rank:comment"
)

// 去重计数器（hash field=userId value=次数，首次为 1 时触发积分）
const (
	NewsViewerLogKey     = "news:view:log:"
	NewsReferralViewKey  = "news:view:ref:"
	NewsTransmitLogKey   = "news:transmit:log:"
	NewsReferralShareKey = "news:transmit:ref:"
	NewsLikeUserKey      = "news:like:user:"
)

// 评论
const (
	NewsCommentListKey = "news:comment:list:"
)

// 分享人当日榜单（饼状图等运营面板使用）
const (
	SharerDailyClassKey = "sharer:rank:class:"
	SharerDailyNewsKey  = "sharer:rank:news:"
	SharerDailyUVKey    = "sharer:uv:"
)

// 积分
const (
	BonusTotalKey = "bonus:point:total"
)
