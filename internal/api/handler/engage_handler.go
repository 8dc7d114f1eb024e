package handler

import (
	"Wellspring/internal/api/dto"
	"Wellspring/internal/api/middleware"
	"Wellspring/internal/pkg/response"
	"Wellspring/internal/service"
	"strconv"

	"github.com/gin-gonic/gin"
)

type EngageHandler struct {
	engageSvc service.EngageService
}

func NewEngageHandler(engageSvc service.EngageService) *EngageHandler {
	return &EngageHandler{
		engageSvc: engageSvc,
	}
}

// RecordView 上报浏览
func (s *EngageHandler) RecordView(c *gin.Context) {
	newsID, err := strconv.ParseUint(c.Param("news_id"), 10, 64)
	if err != nil || newsID == 0 {
		response.Error(c, service.ErrParamInvalid)
		return
	}
	viewer := middleware.CurrentUser(c)

	var req dto.EngageReq
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, service.ErrParamInvalid)
		return
	}

	if err := s.engageSvc.RecordView(c.Request.Context(), newsID, viewer, req.ShareID); err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, nil)
}

// RecordTransmit 上报转发
func (s *EngageHandler) RecordTransmit(c *gin.Context) {
	newsID, err := strconv.ParseUint(c.Param("news_id"), 10, 64)
	if err != nil || newsID == 0 {
		response.Error(c, service.ErrParamInvalid)
		return
	}
	sharer := middleware.CurrentUser(c)

	var req dto.EngageReq
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, service.ErrParamInvalid)
		return
	}

	if err := s.engageSvc.RecordTransmit(c.Request.Context(), newsID, sharer, req.ShareID); err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, nil)
}

// Like 点赞，重复点赞返回业务错误
func (s *EngageHandler) Like(c *gin.Context) {
	newsID, err := strconv.ParseUint(c.Param("news_id"), 10, 64)
	if err != nil || newsID == 0 {
		response.Error(c, service.ErrParamInvalid)
		return
	}
	user := middleware.CurrentUser(c)

	result, err := s.engageSvc.Like(c.Request.Context(), newsID, user.UserID)
	if err != nil {
		response.Error(c, err)
		return
	}
	if !result.Accepted {
		response.Error(c, service.ErrAlreadyLiked)
		return
	}
	response.Success(c, result)
}

// CreateComment 发表评论并返回最新评论列表
func (s *EngageHandler) CreateComment(c *gin.Context) {
	viewer := middleware.CurrentUser(c)

	var req dto.CommentCreateDTO
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, err)
		return
	}

	list, err := s.engageSvc.Comment(c.Request.Context(), req.NewsID, viewer, req.Comment)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, &dto.CommentListDTO{List: list})
}

// GetComments 评论列表，最新在前
func (s *EngageHandler) GetComments(c *gin.Context) {
	newsID, err := strconv.ParseUint(c.Param("news_id"), 10, 64)
	if err != nil || newsID == 0 {
		response.Error(c, service.ErrParamInvalid)
		return
	}

	list, err := s.engageSvc.Comments(c.Request.Context(), newsID)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, &dto.CommentListDTO{List: list})
}

// GetViewAudit 当前用户在某资讯上的双存储对账
func (s *EngageHandler) GetViewAudit(c *gin.Context) {
	newsID, err := strconv.ParseUint(c.Param("news_id"), 10, 64)
	if err != nil || newsID == 0 {
		response.Error(c, service.ErrParamInvalid)
		return
	}
	user := middleware.CurrentUser(c)

	audit, err := s.engageSvc.ViewAudit(c.Request.Context(), newsID, user.UserID)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, audit)
}

// GetMetrics 单条资讯的浏览/点赞/评论计数
func (s *EngageHandler) GetMetrics(c *gin.Context) {
	newsID, err := strconv.ParseUint(c.Param("news_id"), 10, 64)
	if err != nil || newsID == 0 {
		response.Error(c, service.ErrParamInvalid)
		return
	}

	metrics, err := s.engageSvc.Metrics(c.Request.Context(), newsID)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, metrics)
}
