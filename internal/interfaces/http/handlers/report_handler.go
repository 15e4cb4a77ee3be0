package handlers

import (
	"errors"
	"fmt"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"ui-spec-web/internal/application"
	"ui-spec-web/internal/domain/models"
	"ui-spec-web/internal/domain/services"
	"ui-spec-web/pkg/config"
	"ui-spec-web/pkg/logger"
	"ui-spec-web/pkg/types"
)

const (
	// UploadSeedText 上传文件中提取不到文本时使用。上传路径先于
	// ReportService 替换空文本，因此上传请求不会用到 services.SeedText
	UploadSeedText = "Create a modern mobile application"

	sampleProjectName = "Sample-Project"
)

// ReportHandler 报告生成 HTTP 处理器
type ReportHandler struct {
	reportService   *application.ReportService
	documentService *application.DocumentService
	config          *config.Config
}

// NewReportHandler 创建报告 HTTP 处理器实例
func NewReportHandler(reportService *application.ReportService, documentService *application.DocumentService, cfg *config.Config) *ReportHandler {
	return &ReportHandler{
		reportService:   reportService,
		documentService: documentService,
		config:          cfg,
	}
}

// sessionID 依次读取请求头和查询参数，create 为 true 时缺失则新建
func sessionID(c *gin.Context, create bool) string {
	if id := c.GetHeader(sessionIDHeader); id != "" {
		return id
	}
	if id := c.Query("session_id"); id != "" {
		return id
	}
	if create {
		return uuid.NewString()
	}
	return ""
}

// HandleUploadAndReport 处理文档上传并生成报告
func (h *ReportHandler) HandleUploadAndReport(c *gin.Context) {
	requestID := c.GetString(requestIDKey)
	session := sessionID(c, true)
	c.Header(sessionIDHeader, session)

	file, err := c.FormFile("file")
	if err != nil {
		logger.Warn("未上传文件",
			zap.String("request_id", requestID),
			zap.Error(err))
		c.JSON(http.StatusBadRequest, types.ErrorResponse{Error: "请上传文档文件", Code: "missing_file"})
		return
	}

	logger.Info("接收到文档上传",
		zap.String("request_id", requestID),
		zap.String("session_id", session),
		zap.String("file_name", file.Filename),
		zap.Int64("file_size", file.Size))

	text, err := h.documentService.ReadUpload(file)
	if err != nil {
		if errors.Is(err, application.ErrFileTooLarge) {
			c.JSON(http.StatusRequestEntityTooLarge, types.ErrorResponse{Error: "文件大小超过限制", Code: "file_too_large"})
			return
		}
		logger.Error("读取上传文件失败",
			zap.String("request_id", requestID),
			zap.String("category", models.CategoryExtraction),
			zap.Error(err))
		c.JSON(http.StatusBadRequest, types.ErrorResponse{Error: "无法读取上传文件", Details: err.Error()})
		return
	}
	if strings.TrimSpace(text) == "" {
		logger.Warn("上传文件中没有可用文本，使用默认描述",
			zap.String("request_id", requestID),
			zap.String("category", models.CategoryExtraction))
		text = UploadSeedText
	}

	result, err := h.reportService.Generate(c.Request.Context(), application.GenerateRequest{
		Text:        text,
		ProjectName: services.FilenameProjectName(file.Filename),
		SessionID:   session,
	})
	if err != nil {
		writeGenerationError(c, err)
		return
	}

	c.JSON(http.StatusOK, types.UIReportResponse{
		FigmaURL:   result.FigmaURL,
		Report:     result.Report,
		PromptUsed: result.Prompt.User,
		SessionID:  session,
	})
}

// HandleSampleReport 使用示例文档生成报告
func (h *ReportHandler) HandleSampleReport(c *gin.Context) {
	session := sessionID(c, true)
	c.Header(sessionIDHeader, session)

	path := h.config.GetSampleDocumentPath()
	text, err := h.documentService.ReadFile(path)
	if err != nil {
		logger.Warn("读取示例文档失败", zap.String("path", path), zap.Error(err))
		c.JSON(http.StatusOK, gin.H{"error": fmt.Sprintf("Could not process sample document: %v", err)})
		return
	}

	projectName := sampleProjectName
	if strings.TrimSpace(text) != "" {
		projectName = services.ExtractProjectName(text)
	}

	result, err := h.reportService.Generate(c.Request.Context(), application.GenerateRequest{
		Text:        text,
		ProjectName: projectName,
		SessionID:   session,
	})
	if err != nil {
		writeGenerationError(c, err)
		return
	}

	c.JSON(http.StatusOK, types.UIReportResponse{
		FigmaURL:   result.FigmaURL,
		Report:     result.Report,
		PromptUsed: result.Prompt.User,
		SessionID:  session,
	})
}

// HandleLatestReport 返回当前会话最近一次报告
func (h *ReportHandler) HandleLatestReport(c *gin.Context) {
	stored, err := h.reportService.Latest(c.Request.Context(), sessionID(c, false))
	if err != nil {
		if !application.IsNotFound(err) {
			logger.Warn("读取会话报告失败", zap.Error(err))
		}
		c.JSON(http.StatusOK, gin.H{"status": "no_data", "message": "No recent reports available"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": "success", "report": stored.Report})
}

// HandleLatestPrompt 返回当前会话最近一次使用的提示词
func (h *ReportHandler) HandleLatestPrompt(c *gin.Context) {
	prompt, err := h.reportService.LatestPrompt(c.Request.Context(), sessionID(c, false))
	if err != nil {
		if !application.IsNotFound(err) {
			logger.Warn("读取会话提示词失败", zap.Error(err))
		}
		c.JSON(http.StatusOK, gin.H{"status": "no_data", "message": "No recent prompt available. Upload a PDF first."})
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": "success", "prompt": prompt})
}

// writeGenerationError 限流返回 429，其他生成失败返回 503
func writeGenerationError(c *gin.Context, err error) {
	_ = c.Error(err)

	genErr, ok := models.AsGenerationError(err)
	if !ok {
		c.JSON(http.StatusInternalServerError, types.ErrorResponse{Error: "生成报告失败", Details: err.Error()})
		return
	}

	status := http.StatusServiceUnavailable
	message := "生成服务暂时不可用"
	if genErr.IsRateLimited() {
		status = http.StatusTooManyRequests
		message = "生成服务限流，请稍后重试"
		c.Header("Retry-After", "30")
	}
	c.JSON(status, types.ErrorResponse{Error: message, Code: genErr.Code, Details: genErr.Message})
}
