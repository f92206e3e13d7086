package gemini

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"go.uber.org/zap"
	"golang.org/x/time/rate"
	"google.golang.org/genai"

	"github.com/resumatch/backend/internal/domain"
)

const (
	defaultModel             = "gemini-2.0-flash"
	defaultRequestsPerMinute = 15

	// Sampling temperatures per call site: extraction wants determinism,
	// the assessment tolerates more variation.
	extractionTemperature = 0.2
	assessmentTemperature = 0.4

	maxLogLength = 200
)

// Config holds the Gemini client settings.
type Config struct {
	APIKey            string
	Model             string
	RequestsPerMinute int
}

// Client wraps the Google GenAI SDK and implements domain.LLMGateway.
type Client struct {
	client      *genai.Client
	modelName   string
	rateLimiter *rate.Limiter
	logger      *zap.Logger
}

// NewClient creates a Gemini-backed gateway. The API key is required.
func NewClient(ctx context.Context, cfg Config, logger *zap.Logger) (*Client, error) {
	apiKey := strings.TrimSpace(cfg.APIKey)
	if apiKey == "" {
		return nil, errors.New("gemini api key is required")
	}

	client, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey:  apiKey,
		Backend: genai.BackendGeminiAPI,
	})
	if err != nil {
		return nil, fmt.Errorf("create genai client: %w", err)
	}

	model := strings.TrimSpace(cfg.Model)
	if model == "" {
		model = defaultModel
	}

	rpm := cfg.RequestsPerMinute
	if rpm <= 0 {
		rpm = defaultRequestsPerMinute
	}

	if logger == nil {
		logger = zap.NewNop()
	}

	return &Client{
		client:      client,
		modelName:   model,
		rateLimiter: rate.NewLimiter(rate.Limit(float64(rpm)/60.0), 2),
		logger:      logger,
	}, nil
}

// Model returns the configured model name.
func (c *Client) Model() string {
	return c.modelName
}

// ExtractResume asks the model to convert raw resume text into the structured
// candidate profile. Missing fields fall back to defaults.
func (c *Client) ExtractResume(ctx context.Context, resumeText string) (*domain.ResumeInfo, error) {
	prompt := strings.ReplaceAll(resumeExtractionPrompt, "{{RESUME_TEXT}}", resumeText)

	data, err := c.generateJSON(ctx, prompt, extractionTemperature)
	if err != nil {
		return nil, err
	}

	name := coerceString(data["name"])
	if name == "" {
		name = "Unknown"
	}

	return &domain.ResumeInfo{
		Name:                 name,
		TotalExperienceYears: coerceFloat(data["total_experience_years"]),
		Skills:               coerceStringSlice(data["skills"]),
		Education:            coerceStringSlice(data["education"]),
		Projects:             coerceStringSlice(data["projects"]),
	}, nil
}

// ExtractJob asks the model to pull required skills, nice-to-have skills and
// the minimum experience out of a job description.
func (c *Client) ExtractJob(ctx context.Context, jobText string) (*domain.JobInfo, error) {
	prompt := strings.ReplaceAll(jobAnalysisPrompt, "{{JOB_DESCRIPTION}}", jobText)

	data, err := c.generateJSON(ctx, prompt, extractionTemperature)
	if err != nil {
		return nil, err
	}

	return &domain.JobInfo{
		RequiredSkills:   coerceStringSlice(data["required_skills"]),
		MinExperience:    coerceFloat(data["min_experience"]),
		NiceToHaveSkills: coerceStringSlice(data["nice_to_have_skills"]),
	}, nil
}

// GenerateAssessment runs the synthesis call combining the candidate profile,
// the job requirements and the locally computed match result.
func (c *Client) GenerateAssessment(ctx context.Context, resume *domain.ResumeInfo, job *domain.JobInfo, match *domain.MatchResult) (*domain.Assessment, error) {
	prompt := buildAssessmentPrompt(resume, job, match)

	data, err := c.generateJSON(ctx, prompt, assessmentTemperature)
	if err != nil {
		return nil, err
	}

	return &domain.Assessment{
		CandidateSummary:       coerceString(data["candidate_summary"]),
		OverallFit:             coerceString(data["overall_fit"]),
		Strengths:              coerceStringSlice(data["strengths"]),
		Gaps:                   coerceStringSlice(data["gaps"]),
		ImprovementSuggestions: coerceStringSlice(data["improvement_suggestions"]),
	}, nil
}

// generateJSON sends the prompt to Gemini and parses the reply as a JSON
// object. A reply that does not parse is fatal for the request.
func (c *Client) generateJSON(ctx context.Context, prompt string, temperature float32) (map[string]any, error) {
	if err := c.rateLimiter.Wait(ctx); err != nil {
		return nil, fmt.Errorf("rate limiter: %w", err)
	}

	c.logger.Debug("gemini generate content request",
		zap.String("model", c.modelName),
		zap.Int("prompt_length", len(prompt)),
		zap.String("prompt_preview", truncateForLog(prompt, maxLogLength)),
	)

	cfg := &genai.GenerateContentConfig{
		Temperature:      genai.Ptr(temperature),
		ResponseMIMEType: "application/json",
	}

	resp, err := c.client.Models.GenerateContent(ctx, c.modelName, genai.Text(prompt), cfg)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrUpstream, err)
	}

	raw := collectText(resp)
	if raw == "" {
		return nil, fmt.Errorf("%w: empty response", domain.ErrUpstream)
	}

	c.logger.Debug("gemini generate content response",
		zap.Int("response_length", len(raw)),
		zap.String("response_preview", truncateForLog(raw, maxLogLength)),
	)

	var data map[string]any
	if err := json.Unmarshal([]byte(stripFences(raw)), &data); err != nil {
		return nil, fmt.Errorf("%w: parse response: %v", domain.ErrUpstream, err)
	}

	return data, nil
}

// collectText concatenates the textual parts of all candidates.
func collectText(resp *genai.GenerateContentResponse) string {
	var builder strings.Builder
	for _, candidate := range resp.Candidates {
		if candidate == nil || candidate.Content == nil {
			continue
		}
		for _, part := range candidate.Content.Parts {
			if part == nil {
				continue
			}
			text := strings.TrimSpace(part.Text)
			if text == "" {
				continue
			}
			if builder.Len() > 0 {
				builder.WriteString("\n")
			}
			builder.WriteString(text)
		}
	}
	return strings.TrimSpace(builder.String())
}

// stripFences removes a surrounding markdown code fence from a model reply.
func stripFences(raw string) string {
	cleaned := strings.TrimSpace(raw)

	if strings.HasPrefix(cleaned, "```") {
		cleaned = strings.TrimPrefix(cleaned, "```json")
		cleaned = strings.TrimPrefix(cleaned, "```")
		cleaned = strings.TrimSpace(cleaned)
		if idx := strings.LastIndex(cleaned, "```"); idx != -1 {
			cleaned = cleaned[:idx]
		}
	}

	return strings.TrimSpace(cleaned)
}

// truncateForLog shortens s to limit runes, appending an ellipsis when cut.
func truncateForLog(s string, limit int) string {
	runes := []rune(s)
	if len(runes) <= limit {
		return s
	}
	return string(runes[:limit]) + "..."
}

func coerceString(v any) string {
	s, ok := v.(string)
	if !ok {
		return ""
	}
	return strings.TrimSpace(s)
}

func coerceFloat(v any) float64 {
	switch val := v.(type) {
	case float64:
		return val
	case string:
		var f float64
		if _, err := fmt.Sscanf(strings.TrimSpace(val), "%g", &f); err == nil {
			return f
		}
		return 0
	default:
		return 0
	}
}

func coerceStringSlice(v any) []string {
	items, ok := v.([]any)
	if !ok {
		return []string{}
	}

	result := make([]string, 0, len(items))
	for _, item := range items {
		if s, ok := item.(string); ok && strings.TrimSpace(s) != "" {
			result = append(result, strings.TrimSpace(s))
		}
	}
	return result
}
