package service

import (
	"context"
	"fmt"
	"io"
	"mime"
	"strings"

	"go.uber.org/zap"

	"bizportal/internal/apperr"
	"bizportal/internal/logger"
	"bizportal/internal/storage"
)

// DefaultMaxUploadBytes is the upload ceiling when none is configured.
const DefaultMaxUploadBytes int64 = 10 << 20

// allowedMIME is the upload allow-list: PDF, Office formats, common images and plain text.
var allowedMIME = setOf(
	"application/pdf",
	"application/msword",
	"application/vnd.openxmlformats-officedocument.wordprocessingml.document",
	"application/vnd.ms-excel",
	"application/vnd.openxmlformats-officedocument.spreadsheetml.sheet",
	"application/vnd.ms-powerpoint",
	"application/vnd.openxmlformats-officedocument.presentationml.presentation",
	"image/jpeg",
	"image/jpg",
	"image/png",
	"text/plain",
)

func setOf(vals ...string) map[string]bool {
	m := make(map[string]bool, len(vals))
	for _, v := range vals {
		m[v] = true
	}
	return m
}

// FileInput is an upload payload streamed straight to the object store.
type FileInput struct {
	Reader      io.Reader
	Filename    string
	ContentType string
	Size        int64
}

// AllowedMIME reports whether ct (parameters ignored) may be uploaded.
func AllowedMIME(ct string) bool {
	return allowedMIME[mediaType(ct)]
}

func mediaType(ct string) string {
	mt, _, err := mime.ParseMediaType(ct)
	if err != nil {
		return strings.ToLower(strings.TrimSpace(ct))
	}
	return mt
}

func validateFile(f FileInput, maxBytes int64) error {
	if f.Reader == nil {
		return apperr.Validation("file is required")
	}
	if f.Size <= 0 {
		return apperr.Validation("file is empty")
	}
	if f.Size > maxBytes {
		return apperr.Validation(fmt.Sprintf("file exceeds the %d byte limit", maxBytes))
	}
	if !AllowedMIME(f.ContentType) {
		return apperr.Validation("file type is not allowed; only PDF, Word, Excel, PowerPoint, images and text files are accepted")
	}
	return nil
}

// stored is the result of pushing one upload to the object store.
type stored struct {
	info     storage.ObjectInfo
	checksum string
	size     int64
}

// putObject streams f under key while hashing it.
func putObject(ctx context.Context, store storage.Storage, key string, f FileInput) (*stored, error) {
	hr := storage.NewHashingReader(f.Reader)
	info, err := store.Put(ctx, key, hr, storage.PutObjectOptions{
		Size:        f.Size,
		ContentType: mediaType(f.ContentType),
		Metadata:    map[string]string{"original-filename": f.Filename},
	})
	if err != nil {
		return nil, apperr.Upstream("failed to store document", err)
	}
	size := info.Size
	if size <= 0 {
		size = f.Size
	}
	return &stored{info: info, checksum: hr.Sum(), size: size}, nil
}

// rollbackObject removes an object whose metadata could not be saved and
// returns the error to surface.
func rollbackObject(ctx context.Context, store storage.Storage, key string, cause error) error {
	if delErr := store.Delete(ctx, key); delErr != nil {
		logger.FromContext(ctx).Error("storage_rollback_failed",
			zap.String("object_key", key),
			zap.Error(delErr),
		)
		return fmt.Errorf("db save failed: %w; rollback delete failed: %v", cause, delErr)
	}
	return fmt.Errorf("db save failed: %w", cause)
}

func cleanTags(tags []string) []string {
	out := make([]string, 0, len(tags))
	seen := make(map[string]bool, len(tags))
	for _, t := range tags {
		t = strings.TrimSpace(t)
		if t == "" || seen[t] {
			continue
		}
		seen[t] = true
		out = append(out, t)
	}
	return out
}
