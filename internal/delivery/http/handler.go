package http

import (
	"context"
	"errors"
	"io"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/resumatch/backend/internal/domain"
)

// Analyzer runs the resume/job-description analysis pipeline.
type Analyzer interface {
	Analyze(ctx context.Context, resumeText, jobText string) (*domain.FinalAnalysis, error)
}

// Handler holds dependencies for HTTP handlers.
type Handler struct {
	analyzer  Analyzer
	extractor domain.ResumeTextExtractor
	logger    *zap.Logger
}

// NewHandler creates a new HTTP handler.
func NewHandler(analyzer Analyzer, extractor domain.ResumeTextExtractor, logger *zap.Logger) *Handler {
	if logger == nil {
		logger = zap.NewNop()
	}

	return &Handler{
		analyzer:  analyzer,
		extractor: extractor,
		logger:    logger,
	}
}

// Index returns a short API description.
func (h *Handler) Index(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"message": "Resume Analyzer API",
		"endpoints": gin.H{
			"health":  "/health",
			"analyze": "/analyze",
		},
	})
}

// HealthCheck returns the health status of the API.
func (h *Handler) HealthCheck(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status":  "healthy",
		"service": "resumatch-backend",
		"version": "1.0.0",
	})
}

// Analyze accepts a multipart resume upload plus a job-description form field
// and returns the full fit analysis.
func (h *Handler) Analyze(c *gin.Context) {
	fileHeader, err := c.FormFile("resume")
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "resume file is required"})
		return
	}

	jobDescription := c.PostForm("job_description")
	if strings.TrimSpace(jobDescription) == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "job description is required"})
		return
	}

	file, err := fileHeader.Open()
	if err != nil {
		h.logger.Error("failed to open uploaded file", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to read uploaded file"})
		return
	}
	defer file.Close()

	data, err := io.ReadAll(file)
	if err != nil {
		h.logger.Error("failed to read uploaded file", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to read uploaded file"})
		return
	}

	resumeText, err := h.extractor.ExtractText(fileHeader.Filename, data)
	if err != nil {
		h.respondError(c, err)
		return
	}

	analysis, err := h.analyzer.Analyze(c.Request.Context(), resumeText, jobDescription)
	if err != nil {
		h.respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, analysis)
}

// respondError classifies a pipeline error: input and extraction problems are
// the caller's fault and carry their descriptive message; everything else is
// a server error with a generic message and the detail only in the log.
func (h *Handler) respondError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, domain.ErrInvalidInput), errors.Is(err, domain.ErrExtractionFailed):
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
	default:
		h.logger.Error("analysis request failed",
			zap.String("path", c.FullPath()),
			zap.Error(err),
		)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "analysis failed due to an internal error"})
	}
}
