package utils

import "errors"

var (
	ErrDatabaseError = errors.New("database error")
	ErrStorageError  = errors.New("object storage error")
	ErrInvalidInput  = errors.New("invalid input")

	ErrAccountNotFound    = errors.New("account not found")
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrEmailAlreadyExists = errors.New("email already exists")
	ErrUnauthorized       = errors.New("unauthorized")

	ErrMissingImage   = errors.New("image is required")
	ErrMissingCaption = errors.New("caption is required")
	ErrInvalidImage   = errors.New("invalid image")
	ErrImageTooLarge  = errors.New("image too large")
	ErrInvalidTag     = errors.New("unknown mood tag")
	ErrPostNotFound   = errors.New("post not found")
	ErrEmptyMessage   = errors.New("message is required")

	ErrUnexpectedBehaviorOfAI = errors.New("AI service unavailable")
	ErrMalformedAIResponse    = errors.New("malformed AI response")
)
