package app

import (
	"context"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"ui-spec-web/internal/application"
	"ui-spec-web/internal/infrastructure/figma"
	"ui-spec-web/internal/infrastructure/groq"
	"ui-spec-web/internal/infrastructure/store"
	"ui-spec-web/internal/interfaces/http/handlers"
	"ui-spec-web/pkg/config"
	"ui-spec-web/pkg/logger"
)

// App 组装好的服务依赖
type App struct {
	Config    *config.Config
	Generator *groq.Client
	Designs   *figma.Client
	Store     store.ReportStore
	Reports   *application.ReportService
	Documents *application.DocumentService
}

// New 根据配置创建全部依赖
func New(ctx context.Context, cfg *config.Config) (*App, error) {
	pingCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	reports := store.New(pingCtx, cfg)
	generator := groq.GetClient(cfg)
	designs := figma.NewClient(cfg)

	reportService, err := application.NewReportService(generator, designs, reports, cfg.ForceContentSpecificity())
	if err != nil {
		_ = reports.Close()
		return nil, err
	}

	logger.Info("服务依赖初始化完成",
		zap.String("model", generator.Model()),
		zap.Bool("has_figma_access", designs.HasRealAccess()),
		zap.Bool("force_content_specificity", cfg.ForceContentSpecificity()))

	return &App{
		Config:    cfg,
		Generator: generator,
		Designs:   designs,
		Store:     reports,
		Reports:   reportService,
		Documents: application.NewDocumentService(cfg.GetMaxUploadSize()),
	}, nil
}

// Router 创建注册好路由的 Gin 引擎
func (a *App) Router() *gin.Engine {
	router := gin.New()
	router.Use(gin.Recovery())
	router.MaxMultipartMemory = a.Config.GetMaxUploadSize()

	handlers.RegisterRoutes(router,
		handlers.NewReportHandler(a.Reports, a.Documents, a.Config),
		handlers.NewSystemHandler(a.Generator.Model(), a.Designs, a.Config))
	return router
}

// Close 释放存储连接
func (a *App) Close() error {
	return a.Store.Close()
}
