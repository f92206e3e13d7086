package domain

import "context"

// JobInfoCache caches extracted job-description data keyed by the job text's
// fingerprint. Implementations bound their size and evict in insertion order.
type JobInfoCache interface {
	Get(key string) (*JobInfo, bool)
	Put(key string, info *JobInfo)
}

// LLMGateway defines the three language-model interactions the analysis
// pipeline depends on.
type LLMGateway interface {
	ExtractResume(ctx context.Context, resumeText string) (*ResumeInfo, error)
	ExtractJob(ctx context.Context, jobText string) (*JobInfo, error)
	GenerateAssessment(ctx context.Context, resume *ResumeInfo, job *JobInfo, match *MatchResult) (*Assessment, error)
}

// ResumeTextExtractor converts an uploaded resume file into plain text.
type ResumeTextExtractor interface {
	ExtractText(filename string, data []byte) (string, error)
}
