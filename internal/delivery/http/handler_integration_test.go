package http

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"os"
	"testing"

	"github.com/gin-gonic/gin"

	"github.com/resumatch/backend/config"
	"github.com/resumatch/backend/internal/domain"
)

// TestMain sets up test environment before running tests
func TestMain(m *testing.M) {
	gin.SetMode(gin.TestMode)
	os.Exit(m.Run())
}

// stubAnalyzer returns a canned analysis or error.
type stubAnalyzer struct {
	analysis *domain.FinalAnalysis
	err      error

	gotResumeText string
	gotJobText    string
}

func (s *stubAnalyzer) Analyze(ctx context.Context, resumeText, jobText string) (*domain.FinalAnalysis, error) {
	s.gotResumeText = resumeText
	s.gotJobText = jobText
	if s.err != nil {
		return nil, s.err
	}
	return s.analysis, nil
}

// stubExtractor returns the upload bytes as text, or a canned error.
type stubExtractor struct {
	err error
}

func (s *stubExtractor) ExtractText(filename string, data []byte) (string, error) {
	if s.err != nil {
		return "", s.err
	}
	return string(data), nil
}

func setupTestRouter(analyzer Analyzer, extractor domain.ResumeTextExtractor) *gin.Engine {
	cfg := &config.Config{
		Server: config.ServerConfig{
			Port:           "8080",
			Environment:    "test",
			AllowedOrigins: []string{"*"},
		},
	}

	handler := NewHandler(analyzer, extractor, nil)
	return SetupRouter(cfg, handler)
}

// multipartBody builds a multipart request body with a resume file part and a
// job_description field.
func multipartBody(t *testing.T, filename, fileContent, jobDescription string) (*bytes.Buffer, string) {
	t.Helper()

	body := &bytes.Buffer{}
	writer := multipart.NewWriter(body)

	if filename != "" {
		part, err := writer.CreateFormFile("resume", filename)
		if err != nil {
			t.Fatalf("CreateFormFile: %v", err)
		}
		if _, err := part.Write([]byte(fileContent)); err != nil {
			t.Fatalf("write file part: %v", err)
		}
	}

	if jobDescription != "" {
		if err := writer.WriteField("job_description", jobDescription); err != nil {
			t.Fatalf("WriteField: %v", err)
		}
	}

	if err := writer.Close(); err != nil {
		t.Fatalf("close writer: %v", err)
	}

	return body, writer.FormDataContentType()
}

func TestHealthCheckEndpoint(t *testing.T) {
	t.Run("returns healthy status", func(t *testing.T) {
		router := setupTestRouter(&stubAnalyzer{}, &stubExtractor{})

		req, _ := http.NewRequest("GET", "/health", nil)
		w := httptest.NewRecorder()

		router.ServeHTTP(w, req)

		if w.Code != http.StatusOK {
			t.Errorf("Status = %d, want %d", w.Code, http.StatusOK)
		}

		var response map[string]interface{}
		if err := json.Unmarshal(w.Body.Bytes(), &response); err != nil {
			t.Fatalf("Failed to unmarshal response: %v", err)
		}

		if response["status"] != "healthy" {
			t.Errorf("status = %v, want healthy", response["status"])
		}
		if response["service"] != "resumatch-backend" {
			t.Errorf("service = %v, want resumatch-backend", response["service"])
		}
	})
}

func TestIndexEndpoint(t *testing.T) {
	router := setupTestRouter(&stubAnalyzer{}, &stubExtractor{})

	req, _ := http.NewRequest("GET", "/", nil)
	w := httptest.NewRecorder()

	router.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("Status = %d, want %d", w.Code, http.StatusOK)
	}

	var response map[string]interface{}
	if err := json.Unmarshal(w.Body.Bytes(), &response); err != nil {
		t.Fatalf("Failed to unmarshal response: %v", err)
	}

	if response["message"] != "Resume Analyzer API" {
		t.Errorf("message = %v, want Resume Analyzer API", response["message"])
	}
}

func TestAnalyzeEndpoint(t *testing.T) {
	t.Run("returns the analysis on success", func(t *testing.T) {
		analyzer := &stubAnalyzer{
			analysis: &domain.FinalAnalysis{
				CandidateSummary:       "Experienced backend engineer",
				MatchPercentage:        75.0,
				Strengths:              []string{"Python"},
				Gaps:                   []string{"Redis"},
				ImprovementSuggestions: []string{"Learn Redis"},
			},
		}
		router := setupTestRouter(analyzer, &stubExtractor{})

		body, contentType := multipartBody(t, "resume.pdf", "resume text content", "a job description")
		req, _ := http.NewRequest("POST", "/analyze", body)
		req.Header.Set("Content-Type", contentType)
		w := httptest.NewRecorder()

		router.ServeHTTP(w, req)

		if w.Code != http.StatusOK {
			t.Fatalf("Status = %d, want %d, body: %s", w.Code, http.StatusOK, w.Body.String())
		}

		var response domain.FinalAnalysis
		if err := json.Unmarshal(w.Body.Bytes(), &response); err != nil {
			t.Fatalf("Failed to unmarshal response: %v", err)
		}

		if response.CandidateSummary != "Experienced backend engineer" {
			t.Errorf("candidate_summary = %q", response.CandidateSummary)
		}
		if response.MatchPercentage != 75.0 {
			t.Errorf("match_percentage = %v, want 75.0", response.MatchPercentage)
		}

		// Extracted text and form field must reach the analyzer untouched
		if analyzer.gotResumeText != "resume text content" {
			t.Errorf("resume text passed to analyzer = %q", analyzer.gotResumeText)
		}
		if analyzer.gotJobText != "a job description" {
			t.Errorf("job text passed to analyzer = %q", analyzer.gotJobText)
		}
	})

	t.Run("rejects request without resume file", func(t *testing.T) {
		router := setupTestRouter(&stubAnalyzer{}, &stubExtractor{})

		body, contentType := multipartBody(t, "", "", "a job description")
		req, _ := http.NewRequest("POST", "/analyze", body)
		req.Header.Set("Content-Type", contentType)
		w := httptest.NewRecorder()

		router.ServeHTTP(w, req)

		if w.Code != http.StatusBadRequest {
			t.Errorf("Status = %d, want %d", w.Code, http.StatusBadRequest)
		}
	})

	t.Run("rejects request without job description", func(t *testing.T) {
		router := setupTestRouter(&stubAnalyzer{}, &stubExtractor{})

		body, contentType := multipartBody(t, "resume.pdf", "resume text", "")
		req, _ := http.NewRequest("POST", "/analyze", body)
		req.Header.Set("Content-Type", contentType)
		w := httptest.NewRecorder()

		router.ServeHTTP(w, req)

		if w.Code != http.StatusBadRequest {
			t.Errorf("Status = %d, want %d", w.Code, http.StatusBadRequest)
		}
	})

	t.Run("maps extraction failure to 400 with message", func(t *testing.T) {
		extractor := &stubExtractor{
			err: fmt.Errorf("%w: PDF is password-protected or encrypted", domain.ErrExtractionFailed),
		}
		router := setupTestRouter(&stubAnalyzer{}, extractor)

		body, contentType := multipartBody(t, "resume.pdf", "junk", "a job description")
		req, _ := http.NewRequest("POST", "/analyze", body)
		req.Header.Set("Content-Type", contentType)
		w := httptest.NewRecorder()

		router.ServeHTTP(w, req)

		if w.Code != http.StatusBadRequest {
			t.Errorf("Status = %d, want %d", w.Code, http.StatusBadRequest)
		}

		var response map[string]string
		if err := json.Unmarshal(w.Body.Bytes(), &response); err != nil {
			t.Fatalf("Failed to unmarshal response: %v", err)
		}
		if response["error"] == "" || !bytes.Contains(w.Body.Bytes(), []byte("password-protected")) {
			t.Errorf("error = %q, want descriptive extraction message", response["error"])
		}
	})

	t.Run("maps invalid input to 400", func(t *testing.T) {
		analyzer := &stubAnalyzer{
			err: fmt.Errorf("%w: job description is too short", domain.ErrInvalidInput),
		}
		router := setupTestRouter(analyzer, &stubExtractor{})

		body, contentType := multipartBody(t, "resume.pdf", "resume text", "short")
		req, _ := http.NewRequest("POST", "/analyze", body)
		req.Header.Set("Content-Type", contentType)
		w := httptest.NewRecorder()

		router.ServeHTTP(w, req)

		if w.Code != http.StatusBadRequest {
			t.Errorf("Status = %d, want %d", w.Code, http.StatusBadRequest)
		}
	})

	t.Run("maps upstream failure to 500 with generic message", func(t *testing.T) {
		analyzer := &stubAnalyzer{
			err: fmt.Errorf("extract resume: %w: quota exceeded", domain.ErrUpstream),
		}
		router := setupTestRouter(analyzer, &stubExtractor{})

		body, contentType := multipartBody(t, "resume.pdf", "resume text", "a job description")
		req, _ := http.NewRequest("POST", "/analyze", body)
		req.Header.Set("Content-Type", contentType)
		w := httptest.NewRecorder()

		router.ServeHTTP(w, req)

		if w.Code != http.StatusInternalServerError {
			t.Errorf("Status = %d, want %d", w.Code, http.StatusInternalServerError)
		}

		// Upstream detail must not leak to the caller
		if bytes.Contains(w.Body.Bytes(), []byte("quota")) {
			t.Errorf("response leaked upstream detail: %s", w.Body.String())
		}
	})

	t.Run("maps uncategorized failure to 500", func(t *testing.T) {
		analyzer := &stubAnalyzer{err: errors.New("something unexpected")}
		router := setupTestRouter(analyzer, &stubExtractor{})

		body, contentType := multipartBody(t, "resume.pdf", "resume text", "a job description")
		req, _ := http.NewRequest("POST", "/analyze", body)
		req.Header.Set("Content-Type", contentType)
		w := httptest.NewRecorder()

		router.ServeHTTP(w, req)

		if w.Code != http.StatusInternalServerError {
			t.Errorf("Status = %d, want %d", w.Code, http.StatusInternalServerError)
		}
	})

	t.Run("accepts POST only", func(t *testing.T) {
		router := setupTestRouter(&stubAnalyzer{}, &stubExtractor{})

		req, _ := http.NewRequest("GET", "/analyze", nil)
		w := httptest.NewRecorder()

		router.ServeHTTP(w, req)

		if w.Code != http.StatusNotFound {
			t.Errorf("Status = %d, want %d", w.Code, http.StatusNotFound)
		}
	})
}
