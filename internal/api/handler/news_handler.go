package handler

import (
	"Wellspring/internal/api/middleware"
	"Wellspring/internal/pkg/consts"
	"Wellspring/internal/pkg/response"
	"Wellspring/internal/pkg/util"
	"Wellspring/internal/service"
	"strconv"

	"github.com/gin-gonic/gin"
)

type NewsHandler struct {
	newsSvc service.NewsService
}

func NewNewsHandler(newsSvc service.NewsService) *NewsHandler {
	return &NewsHandler{
		newsSvc: newsSvc,
	}
}

// GetNewsList 列表页：order=1 热门 order=2 最新，category=0 表示全部
func (s *NewsHandler) GetNewsList(c *gin.Context) {
	category := util.ParsePositiveInt(c.Query("category"), consts.ContextTotal)
	order := util.ParsePositiveInt(c.Query("order"), consts.OrderHot)
	page := util.ParsePositiveInt(c.Query("page"), 1)

	list, err := s.newsSvc.GetNewsList(c.Request.Context(), category, order, page)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, list)
}

// GetNewsDetail 图文详情页，携带 share_id 时本次浏览计入分享人名下
func (s *NewsHandler) GetNewsDetail(c *gin.Context) {
	s.detail(c, consts.NewsKindArticle)
}

// GetSelfTestDetail 自测题详情页，类型不符时拒绝
func (s *NewsHandler) GetSelfTestDetail(c *gin.Context) {
	s.detail(c, consts.NewsKindSelfTest)
}

func (s *NewsHandler) detail(c *gin.Context, kind int8) {
	newsID, err := strconv.ParseUint(c.Param("news_id"), 10, 64)
	if err != nil || newsID == 0 {
		response.Error(c, service.ErrParamInvalid)
		return
	}
	viewer := middleware.CurrentUser(c)
	shareID := c.Query("share_id")

	detail, err := s.newsSvc.GetNewsDetail(c.Request.Context(), newsID, kind, viewer, shareID)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, detail)
}

// GetTrend 最近 N 天的每日热度快照
func (s *NewsHandler) GetTrend(c *gin.Context) {
	newsID, err := strconv.ParseUint(c.Param("news_id"), 10, 64)
	if err != nil || newsID == 0 {
		response.Error(c, service.ErrParamInvalid)
		return
	}
	days := util.ParsePositiveInt(c.Query("days"), 7)

	trend, err := s.newsSvc.GetTrend(c.Request.Context(), newsID, days)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, trend)
}
