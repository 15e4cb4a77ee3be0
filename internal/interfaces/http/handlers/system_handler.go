package handlers

import (
	"net/http"
	"os"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"ui-spec-web/pkg/config"
	"ui-spec-web/pkg/types"
)

// AccessChecker 报告设计服务是否可用
type AccessChecker interface {
	HasRealAccess() bool
}

// SystemHandler 健康检查和杂项端点
type SystemHandler struct {
	model  string
	design AccessChecker
	config *config.Config
}

// NewSystemHandler 创建系统 HTTP 处理器实例
func NewSystemHandler(model string, design AccessChecker, cfg *config.Config) *SystemHandler {
	return &SystemHandler{model: model, design: design, config: cfg}
}

func (h *SystemHandler) HandleHealth(c *gin.Context) {
	_, err := os.Stat(h.config.GetSampleDocumentPath())
	sampleLoaded := err == nil

	c.JSON(http.StatusOK, types.HealthResponse{
		Status:               "ok",
		LLMProvider:          "groq:" + h.model,
		HasFigmaAccess:       h.design != nil && h.design.HasRealAccess(),
		SampleDocumentLoaded: &sampleLoaded,
	})
}

func (h *SystemHandler) HandleRoot(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"message": "Server is running"})
}

func (h *SystemHandler) HandleFavicon(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"message": "No favicon"})
}

// HandleDevTools Chrome 开发者工具探测请求
func (h *SystemHandler) HandleDevTools(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{})
}

// RegisterRoutes 注册全部路由和中间件
func RegisterRoutes(router *gin.Engine, reports *ReportHandler, system *SystemHandler) {
	router.Use(RequestID(), CORS(), AccessLog())

	router.POST("/upload-and-report", reports.HandleUploadAndReport)
	router.POST("/upload", reports.HandleUploadAndReport)
	router.POST("/sample-report", reports.HandleSampleReport)
	router.GET("/latest-report", reports.HandleLatestReport)
	router.GET("/latest-prompt", reports.HandleLatestPrompt)

	router.GET("/", system.HandleRoot)
	router.GET("/health", system.HandleHealth)
	router.GET("/favicon.ico", system.HandleFavicon)
	router.GET("/.well-known/appspecific/com.chrome.devtools.json", system.HandleDevTools)
	router.GET("/metrics", gin.WrapH(promhttp.Handler()))
}
