package domain

// ResumeInfo is the structured profile extracted from a resume by the
// language model.
type ResumeInfo struct {
	Name                 string   `json:"name"`
	TotalExperienceYears float64  `json:"total_experience_years"`
	Skills               []string `json:"skills"`
	Education            []string `json:"education"`
	Projects             []string `json:"projects"`
}

// JobInfo is the structured requirements extracted from a job description.
type JobInfo struct {
	RequiredSkills   []string `json:"required_skills"`
	MinExperience    float64  `json:"min_experience"`
	NiceToHaveSkills []string `json:"nice_to_have_skills"`
}

// MatchResult is the outcome of matching a candidate's skills against a job.
// MatchedSkills and MissingSkills together contain every required skill in
// input order, with the required skill's original text retained.
type MatchResult struct {
	MatchedSkills     []string `json:"matched_skills"`
	MissingSkills     []string `json:"missing_skills"`
	MatchedNiceToHave []string `json:"matched_nice_to_have"`
	MatchPercentage   float64  `json:"match_percentage"`
}

// Assessment is the narrative verdict produced by the synthesis call.
// OverallFit is parsed from the model reply but not exposed in the API
// payload.
type Assessment struct {
	CandidateSummary       string
	OverallFit             string
	Strengths              []string
	Gaps                   []string
	ImprovementSuggestions []string
}

// FinalAnalysis is the response payload returned by the analyze endpoint.
// MatchPercentage always comes from the local skill matcher, never from the
// model.
type FinalAnalysis struct {
	CandidateSummary       string   `json:"candidate_summary"`
	MatchPercentage        float64  `json:"match_percentage"`
	Strengths              []string `json:"strengths"`
	Gaps                   []string `json:"gaps"`
	ImprovementSuggestions []string `json:"improvement_suggestions"`
}
