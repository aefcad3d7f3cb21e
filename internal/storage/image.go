package storage

import (
	"bytes"
	"fmt"
	"image"
	_ "image/jpeg"
	_ "image/png"
	"io"
	"net/http"

	_ "golang.org/x/image/webp" // Register WebP decoder

	"moodlog/pkg/utils"
)

var allowedImageTypes = map[string]string{
	"image/jpeg": "jpg",
	"image/png":  "png",
	"image/webp": "webp",
}

type Image struct {
	Data        []byte
	ContentType string
	Ext         string
	Width       int
	Height      int
}

// ReadImage reads at most maxBytes from r and validates the result with SniffImage.
func ReadImage(r io.Reader, maxBytes int64) (*Image, error) {
	data, err := io.ReadAll(io.LimitReader(r, maxBytes+1))
	if err != nil {
		return nil, fmt.Errorf("%w: %v", utils.ErrInvalidImage, err)
	}
	if int64(len(data)) > maxBytes {
		return nil, utils.ErrImageTooLarge
	}
	return SniffImage(data)
}

// SniffImage trusts the bytes, never the client-supplied content type.
func SniffImage(data []byte) (*Image, error) {
	if len(data) == 0 {
		return nil, utils.ErrMissingImage
	}

	contentType := http.DetectContentType(data)
	ext, ok := allowedImageTypes[contentType]
	if !ok {
		return nil, fmt.Errorf("%w: %s", utils.ErrInvalidImage, contentType)
	}

	cfg, _, err := image.DecodeConfig(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("%w: %v", utils.ErrInvalidImage, err)
	}

	return &Image{
		Data:        data,
		ContentType: contentType,
		Ext:         ext,
		Width:       cfg.Width,
		Height:      cfg.Height,
	}, nil
}
