package domain

import "errors"

var (
	// ErrInvalidInput is returned when the caller's input is rejected
	// (bad file type, empty or oversized upload, job text too short)
	ErrInvalidInput = errors.New("invalid input")

	// ErrExtractionFailed is returned when resume text cannot be extracted
	// from the uploaded PDF (encrypted, corrupt, no text, text too short)
	ErrExtractionFailed = errors.New("resume text extraction failed")

	// ErrUpstream is returned when a language model call fails or returns
	// an unparseable reply
	ErrUpstream = errors.New("language model request failed")
)
