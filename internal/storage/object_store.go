// Package storage keeps uploaded images in a blob store and hands back public URLs.
package storage

import (
	"context"
	"fmt"
	"strings"

	"github.com/google/uuid"
)

type ObjectStore interface {
	// Put stores data under key and returns the URL clients use to fetch it.
	Put(ctx context.Context, key string, data []byte, contentType string) (string, error)
	// Delete is a no-op for keys that do not exist.
	Delete(ctx context.Context, key string) error
}

// NewObjectKey builds "<prefix>/<account>/<random>.<ext>".
func NewObjectKey(prefix string, accountID uuid.UUID, ext string) string {
	return fmt.Sprintf("%s/%s/%s.%s", prefix, accountID, uuid.NewString(), strings.TrimPrefix(ext, "."))
}

func joinURL(base, key string) string {
	return strings.TrimRight(base, "/") + "/" + strings.TrimLeft(key, "/")
}
