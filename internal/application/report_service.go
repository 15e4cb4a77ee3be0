package application

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"ui-spec-web/internal/domain/models"
	"ui-spec-web/internal/domain/services"
	"ui-spec-web/internal/infrastructure/figma"
	"ui-spec-web/internal/infrastructure/metrics"
	"ui-spec-web/internal/infrastructure/store"
	"ui-spec-web/pkg/logger"
	"ui-spec-web/pkg/types"
)

// Generator 根据提示词生成原始规格文本
type Generator interface {
	Generate(ctx context.Context, prompt models.PromptSpec) (string, error)
}

// DesignLinker 为报告创建设计文件链接
type DesignLinker interface {
	CreateFile(ctx context.Context, name string) (string, error)
}

// GenerateRequest 一次报告生成请求
type GenerateRequest struct {
	Text        string
	ProjectName string // 为空时使用从文本中提取的名称
	SessionID   string // 为空时不保存结果
}

// GenerateResult 报告生成结果
type GenerateResult struct {
	Report   types.UIReport
	Prompt   models.PromptSpec
	Analysis models.ContentAnalysis
	FigmaURL *string
	Source   models.SpecSource
	State    models.PipelineState
}

// ReportService 文档到界面报告的流水线
type ReportService struct {
	analyzer  *services.ContentAnalyzer
	repairer  *services.ResponseRepairer
	enhancer  *services.Enhancer
	generator Generator
	designs   DesignLinker
	reports   store.ReportStore
	now       func() time.Time
}

// NewReportService 创建报告应用服务实例，designs 可以为 nil
func NewReportService(generator Generator, designs DesignLinker, reports store.ReportStore, forceContentSpecificity bool) (*ReportService, error) {
	repairer, err := services.NewResponseRepairer()
	if err != nil {
		return nil, err
	}
	return &ReportService{
		analyzer:  services.NewContentAnalyzer(),
		repairer:  repairer,
		enhancer:  services.NewEnhancer(forceContentSpecificity),
		generator: generator,
		designs:   designs,
		reports:   reports,
		now:       time.Now,
	}, nil
}

// pipelineRun 记录单次请求的状态变化
type pipelineRun struct {
	log   *zap.Logger
	state models.PipelineState
	start time.Time
}

func (r *pipelineRun) enter(state models.PipelineState, fields ...zap.Field) {
	r.log.Debug("流水线状态变化",
		append(fields, zap.String("from", string(r.state)), zap.String("to", string(state)))...)
	r.state = state
}

// Generate 依次执行分析、提示词、生成、解析修复、增强和规范化；只有生成阶段会失败
func (s *ReportService) Generate(ctx context.Context, req GenerateRequest) (*GenerateResult, error) {
	run := &pipelineRun{
		log:   logger.WithFields(zap.String("session_id", req.SessionID)),
		state: models.StateInit,
		start: time.Now(),
	}
	defer func() {
		metrics.PipelineDuration.Observe(time.Since(run.start).Seconds())
	}()

	if strings.TrimSpace(req.Text) == "" {
		run.log.Warn("文档文本为空，使用默认种子内容", zap.String("category", models.CategoryExtraction))
		req.Text = services.SeedText
	}

	analysis := s.analyzer.Analyze(req.Text)
	metrics.DomainClassified.WithLabelValues(string(analysis.Domain)).Inc()
	run.enter(models.StateAnalyzed,
		zap.String("project_name", analysis.ProjectName),
		zap.String("domain", string(analysis.Domain)))

	prompt, err := services.ComposePrompt(services.Excerpt(req.Text), analysis)
	if err != nil {
		run.enter(models.StateFailed, zap.Error(err))
		metrics.PipelineRequests.WithLabelValues(metrics.OutcomeFailed).Inc()
		return nil, fmt.Errorf("构建提示词失败: %w", err)
	}
	run.enter(models.StatePrompted, zap.Int("prompt_length", len(prompt.User)))

	run.enter(models.StateGenerating)
	raw, err := s.generator.Generate(ctx, prompt)
	if err != nil {
		run.enter(models.StateFailed, zap.String("category", models.CategoryGeneration), zap.Error(err))
		metrics.PipelineRequests.WithLabelValues(metrics.OutcomeFailed).Inc()
		return nil, err
	}

	validated := s.repairer.Repair(raw, analysis)
	if validated.Source == models.SourceFallback {
		metrics.Fallbacks.WithLabelValues(models.CategoryParse).Inc()
		run.enter(models.StateFallbackBuilt)
	} else {
		if len(validated.SchemaErrors) > 0 {
			metrics.Fallbacks.WithLabelValues(models.CategoryNormalization).Inc()
		}
		run.enter(models.StateParsed, zap.Int("schema_errors", len(validated.SchemaErrors)))
	}

	spec := s.enhancer.Apply(validated.Data, analysis)
	report := services.Normalize(spec, req.Text)
	if validated.Source == models.SourceParsed {
		report.Summary = services.InsightDigest(report.Summary, analysis.Insights)
	}
	run.enter(models.StateNormalized, zap.Int("screens", len(report.Screens)))

	result := &GenerateResult{
		Report:   report,
		Prompt:   prompt,
		Analysis: analysis,
		FigmaURL: s.designLink(ctx, req.ProjectName, analysis),
		Source:   validated.Source,
	}

	if req.SessionID != "" && s.reports != nil {
		stored := store.StoredReport{
			SessionID: req.SessionID,
			Report:    report,
			Prompt:    prompt.User,
			FigmaURL:  result.FigmaURL,
			CreatedAt: s.now(),
		}
		if err := s.reports.Save(ctx, req.SessionID, stored); err != nil {
			run.log.Warn("保存会话报告失败", zap.Error(err))
		}
	}

	run.enter(models.StateDone)
	result.State = run.state

	outcome := metrics.OutcomeSuccess
	if validated.Source == models.SourceFallback {
		outcome = metrics.OutcomeFallback
	}
	metrics.PipelineRequests.WithLabelValues(outcome).Inc()
	run.log.Info("报告生成完成",
		zap.String("project_name", report.ProjectName),
		zap.String("source", string(validated.Source)),
		logger.Elapsed(run.start))
	return result, nil
}

// designLink 创建设计文件失败时返回 nil
func (s *ReportService) designLink(ctx context.Context, projectName string, analysis models.ContentAnalysis) *string {
	if s.designs == nil {
		return nil
	}
	if projectName == "" {
		projectName = analysis.ProjectName
	}
	name := figma.UniqueFileName(projectName, analysis.Domain, s.now(), uuid.NewString())

	link, err := s.designs.CreateFile(ctx, name)
	if err != nil {
		logger.Warn("创建设计文件失败", zap.String("name", name), zap.Error(err))
		metrics.Fallbacks.WithLabelValues("design_link").Inc()
		return nil
	}
	return &link
}

// Latest 返回会话最近一次报告，没有时返回 store.ErrNotFound
func (s *ReportService) Latest(ctx context.Context, sessionID string) (*store.StoredReport, error) {
	if s.reports == nil || sessionID == "" {
		return nil, store.ErrNotFound
	}
	return s.reports.Latest(ctx, sessionID)
}

// LatestPrompt 返回会话最近一次使用的提示词
func (s *ReportService) LatestPrompt(ctx context.Context, sessionID string) (string, error) {
	stored, err := s.Latest(ctx, sessionID)
	if err != nil {
		return "", err
	}
	if stored.Prompt == "" {
		return "", store.ErrNotFound
	}
	return stored.Prompt, nil
}

// IsNotFound 判断是否为会话没有数据
func IsNotFound(err error) bool {
	return errors.Is(err, store.ErrNotFound)
}
