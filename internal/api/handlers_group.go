package api

import "Wellspring/internal/api/handler"

// HandlersGroup 封装了所有已初始化的 Handler 实例
type HandlersGroup struct {
	NewsHandler   *handler.NewsHandler
	EngageHandler *handler.EngageHandler
	PointHandler  *handler.PointHandler
}
