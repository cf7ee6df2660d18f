package models

import "errors"

var (
	// ErrInput marks an empty or unsupported submission; the pipeline is not run.
	ErrInput = errors.New("invalid input")
	// ErrNotFound marks an audio file missing at transcription time.
	ErrNotFound = errors.New("not found")
	// ErrPersistence marks an unreadable or unwritable assessment log.
	ErrPersistence = errors.New("persistence failure")
)
