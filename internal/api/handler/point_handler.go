package handler

import (
	"Wellspring/internal/api/dto"
	"Wellspring/internal/api/middleware"
	"Wellspring/internal/pkg/response"
	"Wellspring/internal/pkg/util"
	"Wellspring/internal/service"

	"github.com/gin-gonic/gin"
)

type PointHandler struct {
	engageSvc service.EngageService
}

func NewPointHandler(engageSvc service.EngageService) *PointHandler {
	return &PointHandler{
		engageSvc: engageSvc,
	}
}

// GetBalance 查询当前用户积分余额
func (s *PointHandler) GetBalance(c *gin.Context) {
	user := middleware.CurrentUser(c)

	total, err := s.engageSvc.Balance(c.Request.Context(), user.UserID)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, &dto.BalanceDTO{UserID: user.UserID, TotalPoint: total})
}

// GetShareDashboard 查询当前用户某日的分享面板
func (s *PointHandler) GetShareDashboard(c *gin.Context) {
	user := middleware.CurrentUser(c)
	date := c.Query("date")

	dashboard, err := s.engageSvc.ShareDashboard(c.Request.Context(), user.UserID, date)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, dashboard)
}

// GetPointRecords 查询当前用户积分流水，按时间倒序分页
func (s *PointHandler) GetPointRecords(c *gin.Context) {
	user := middleware.CurrentUser(c)
	page := util.ParsePositiveInt(c.Query("page"), 1)
	pageSize := util.ParsePositiveInt(c.Query("page_size"), 20)

	records, err := s.engageSvc.PointHistory(c.Request.Context(), user.UserID, page, pageSize)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, records)
}
