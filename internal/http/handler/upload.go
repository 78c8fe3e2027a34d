package handler

import (
	"encoding/json"
	"io"
	"mime"
	"path/filepath"
	"strings"

	"github.com/gofiber/fiber/v2"

	"bizportal/internal/service"
)

var (
	errFileRequired = &requestError{"FILE_REQUIRED", "file is required"}
	errFileOpen     = &requestError{"FILE_OPEN_ERROR", "cannot open uploaded file"}
	errInvalidTags  = &requestError{"INVALID_TAGS", "tags must be a JSON array of strings"}
)

// formFile opens the multipart field "file". The caller closes the returned reader.
func formFile(c *fiber.Ctx) (service.FileInput, io.Closer, *requestError) {
	fh, err := c.FormFile("file")
	if err != nil {
		return service.FileInput{}, nil, errFileRequired
	}
	f, err := fh.Open()
	if err != nil {
		return service.FileInput{}, nil, errFileOpen
	}

	// Browsers and multipart writers often send octet-stream; fall back to the extension.
	ct := fh.Header.Get("Content-Type")
	if ct == "" || ct == "application/octet-stream" {
		if guess := mime.TypeByExtension(strings.ToLower(filepath.Ext(fh.Filename))); guess != "" {
			ct = guess
		}
	}
	return service.FileInput{
		Reader:      f,
		Filename:    fh.Filename,
		ContentType: ct,
		Size:        fh.Size,
	}, f, nil
}

// parseTags accepts a JSON array string or a comma separated list.
func parseTags(raw string) ([]string, *requestError) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return nil, nil
	}
	if strings.HasPrefix(raw, "[") {
		var tags []string
		if err := json.Unmarshal([]byte(raw), &tags); err != nil {
			return nil, errInvalidTags
		}
		return tags, nil
	}
	return strings.Split(raw, ","), nil
}
