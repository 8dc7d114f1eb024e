package wire

import (
	"Wellspring/internal/api"
	"Wellspring/internal/api/config"
	"Wellspring/internal/api/handler"
	"Wellspring/internal/job"
	"Wellspring/internal/pkg/counter"
	"Wellspring/internal/pkg/cron"
	"Wellspring/internal/repository"
	"Wellspring/internal/service"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

// ApplicationContainer 封装了应用运行所需的所有顶级组件
type ApplicationContainer struct {
	Router  *gin.Engine
	DB      *gorm.DB
	Store   counter.Store
	CronMgr *cron.Manager
}

func BuildApplication(db *gorm.DB, store counter.Store, cfg *config.Config) (*ApplicationContainer, error) {
	newsRepo := repository.NewNewsRepo(db)
	userRepo := repository.NewUserRepo(db)
	rewardCfgRepo := repository.NewRewardConfigRepo(db)
	ledgerRepo := repository.NewLedgerRepo(db)
	metricRepo := repository.NewNewsMetricRepo(db)

	pointSvc := service.NewGlobalPointService(cfg.BonusMall)
	engageSvc := service.NewEngageService(store, ledgerRepo, newsRepo, userRepo, rewardCfgRepo, pointSvc)
	newsSvc := service.NewNewsService(newsRepo, metricRepo, store, engageSvc, cfg)

	handlers := &api.HandlersGroup{
		NewsHandler:   handler.NewNewsHandler(newsSvc),
		EngageHandler: handler.NewEngageHandler(engageSvc),
		PointHandler:  handler.NewPointHandler(engageSvc),
	}

	router := api.SetupRouter(handlers)

	cronMgr := cron.NewCronManager(job.NewNewsMetricJob(store, metricRepo))

	return &ApplicationContainer{
		Router:  router,
		DB:      db,
		Store:   store,
		CronMgr: cronMgr,
	}, nil
}
