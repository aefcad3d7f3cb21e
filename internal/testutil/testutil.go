// Package testutil provides shared test doubles and fixtures for backend tests.
package testutil

import (
	"bytes"
	"context"
	"image"
	"image/color"
	"image/png"
	"sync"
	"testing"

	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"moodlog/internal/infra"
)

// NewSQLiteDB opens a migrated in-memory database private to t.
func NewSQLiteDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger:         logger.Default.LogMode(logger.Silent),
		TranslateError: true,
	})
	require.NoError(t, err)

	sqlDB, err := db.DB()
	require.NoError(t, err)
	// every new connection would get its own empty :memory: database
	sqlDB.SetMaxOpenConns(1)
	t.Cleanup(func() { _ = sqlDB.Close() })

	require.NoError(t, infra.Migrate(db))
	return db
}

// PNGBytes encodes a tiny valid PNG.
func PNGBytes(t *testing.T) []byte {
	t.Helper()
	img := image.NewRGBA(image.Rect(0, 0, 2, 2))
	img.Set(1, 1, color.RGBA{G: 200, A: 255})
	var buf bytes.Buffer
	require.NoError(t, png.Encode(&buf, img))
	return buf.Bytes()
}

// StubGenerativeClient records prompts and answers through its func fields.
type StubGenerativeClient struct {
	WithImageFn func(ctx context.Context, prompt string, image []byte, mimeType string) (string, error)
	TextFn      func(ctx context.Context, prompt string) (string, error)

	mu           sync.Mutex
	ImagePrompts []string
	TextPrompts  []string
}

func (s *StubGenerativeClient) GenerateWithImage(ctx context.Context, prompt string, image []byte, mimeType string) (string, error) {
	s.mu.Lock()
	s.ImagePrompts = append(s.ImagePrompts, prompt)
	s.mu.Unlock()
	if s.WithImageFn == nil {
		return "", context.DeadlineExceeded
	}
	return s.WithImageFn(ctx, prompt, image, mimeType)
}

func (s *StubGenerativeClient) GenerateText(ctx context.Context, prompt string) (string, error) {
	s.mu.Lock()
	s.TextPrompts = append(s.TextPrompts, prompt)
	s.mu.Unlock()
	if s.TextFn == nil {
		return "", context.DeadlineExceeded
	}
	return s.TextFn(ctx, prompt)
}

func (s *StubGenerativeClient) Close() error { return nil }

func (s *StubGenerativeClient) TextCalls() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.TextPrompts)
}

func (s *StubGenerativeClient) ImageCalls() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.ImagePrompts)
}
