package usecase

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"strings"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/resumatch/backend/internal/domain"
)

// DefaultMinJobDescriptionChars is the minimum accepted job-description
// length when none is configured.
const DefaultMinJobDescriptionChars = 50

// AnalysisServiceConfig holds configuration for the analysis service.
type AnalysisServiceConfig struct {
	MinJobDescriptionChars int
}

// AnalysisService orchestrates the analysis pipeline: extract structured data
// from resume and job description, match skills locally, then ask the model
// for the narrative assessment.
type AnalysisService struct {
	gateway     domain.LLMGateway
	cache       domain.JobInfoCache
	logger      *zap.Logger
	minJobChars int
}

// NewAnalysisService creates an analysis service with its dependencies.
func NewAnalysisService(
	gateway domain.LLMGateway,
	cache domain.JobInfoCache,
	logger *zap.Logger,
	config AnalysisServiceConfig,
) *AnalysisService {
	minJobChars := config.MinJobDescriptionChars
	if minJobChars <= 0 {
		minJobChars = DefaultMinJobDescriptionChars
	}

	if logger == nil {
		logger = zap.NewNop()
	}

	return &AnalysisService{
		gateway:     gateway,
		cache:       cache,
		logger:      logger,
		minJobChars: minJobChars,
	}
}

// JobFingerprint returns the cache key for a job description: the sha256
// digest of its trimmed bytes.
func JobFingerprint(jobText string) string {
	sum := sha256.Sum256([]byte(strings.TrimSpace(jobText)))
	return hex.EncodeToString(sum[:])
}

// Analyze runs the full pipeline for one request.
// Flow: validate job text -> probe cache -> extract resume (and job on a
// cache miss) concurrently -> store job data -> match skills -> synthesis
// call -> assemble payload. Any call failure aborts the request; partial
// results are never cached or returned.
func (s *AnalysisService) Analyze(ctx context.Context, resumeText, jobText string) (*domain.FinalAnalysis, error) {
	jobText = strings.TrimSpace(jobText)
	if len(jobText) < s.minJobChars {
		return nil, fmt.Errorf("%w: job description is too short, minimum %d characters required",
			domain.ErrInvalidInput, s.minJobChars)
	}

	fingerprint := JobFingerprint(jobText)
	cachedJob, cacheHit := s.cache.Get(fingerprint)

	s.logger.Debug("job description cache probe",
		zap.String("fingerprint", fingerprint[:12]),
		zap.Bool("hit", cacheHit),
	)

	var (
		resumeInfo *domain.ResumeInfo
		jobInfo    = cachedJob
	)

	// Fire both extraction calls at once; the job call is skipped on a hit.
	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		info, err := s.gateway.ExtractResume(gctx, resumeText)
		if err != nil {
			return fmt.Errorf("extract resume: %w", err)
		}
		resumeInfo = info
		return nil
	})

	if !cacheHit {
		g.Go(func() error {
			info, err := s.gateway.ExtractJob(gctx, jobText)
			if err != nil {
				return fmt.Errorf("extract job description: %w", err)
			}
			jobInfo = info
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}

	if !cacheHit {
		s.cache.Put(fingerprint, jobInfo)
	}

	match := MatchResumeToJob(resumeInfo.Skills, jobInfo.RequiredSkills, jobInfo.NiceToHaveSkills)

	s.logger.Debug("skill matching complete",
		zap.Int("matched", len(match.MatchedSkills)),
		zap.Int("missing", len(match.MissingSkills)),
		zap.Float64("percentage", match.MatchPercentage),
	)

	assessment, err := s.gateway.GenerateAssessment(ctx, resumeInfo, jobInfo, match)
	if err != nil {
		return nil, fmt.Errorf("generate assessment: %w", err)
	}

	// The percentage always comes from the local matcher, not the model.
	return &domain.FinalAnalysis{
		CandidateSummary:       assessment.CandidateSummary,
		MatchPercentage:        match.MatchPercentage,
		Strengths:              emptyIfNil(assessment.Strengths),
		Gaps:                   emptyIfNil(assessment.Gaps),
		ImprovementSuggestions: emptyIfNil(assessment.ImprovementSuggestions),
	}, nil
}

func emptyIfNil(items []string) []string {
	if items == nil {
		return []string{}
	}
	return items
}
