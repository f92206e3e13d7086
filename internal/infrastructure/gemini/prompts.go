package gemini

import (
	_ "embed"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/resumatch/backend/internal/domain"
)

//go:embed prompts/resume_extraction.md
var resumeExtractionPrompt string

//go:embed prompts/job_analysis.md
var jobAnalysisPrompt string

//go:embed prompts/final_assessment.md
var finalAssessmentPrompt string

// buildAssessmentPrompt renders the synthesis prompt from the candidate
// profile, the job requirements and the computed match result.
func buildAssessmentPrompt(resume *domain.ResumeInfo, job *domain.JobInfo, match *domain.MatchResult) string {
	replacements := map[string]string{
		"{{CANDIDATE_NAME}}":       resume.Name,
		"{{TOTAL_EXPERIENCE}}":     formatYears(resume.TotalExperienceYears),
		"{{EDUCATION}}":            formatList(resume.Education),
		"{{PROJECTS}}":             formatList(resume.Projects),
		"{{RESUME_SKILLS}}":        formatList(resume.Skills),
		"{{REQUIRED_SKILLS}}":      formatList(job.RequiredSkills),
		"{{NICE_TO_HAVE_SKILLS}}":  formatList(job.NiceToHaveSkills),
		"{{MIN_EXPERIENCE}}":       formatYears(job.MinExperience),
		"{{MATCHED_SKILLS}}":       formatList(match.MatchedSkills),
		"{{MISSING_SKILLS}}":       formatList(match.MissingSkills),
		"{{MATCHED_NICE_TO_HAVE}}": formatList(match.MatchedNiceToHave),
		"{{MATCH_PERCENTAGE}}":     fmt.Sprintf("%.2f", match.MatchPercentage),
	}

	prompt := finalAssessmentPrompt
	for placeholder, value := range replacements {
		prompt = strings.ReplaceAll(prompt, placeholder, value)
	}
	return prompt
}

// formatList renders a string list as a JSON array for prompt interpolation.
func formatList(items []string) string {
	if len(items) == 0 {
		return "[]"
	}
	data, err := json.Marshal(items)
	if err != nil {
		return "[]"
	}
	return string(data)
}

func formatYears(years float64) string {
	if years == float64(int(years)) {
		return fmt.Sprintf("%d", int(years))
	}
	return fmt.Sprintf("%.1f", years)
}
