package storage

import (
	"path"
	"strings"

	"github.com/oklog/ulid/v2"
)

const (
	clientPrefix = "client-documents"
	adminPrefix  = "business-documents"
)

// ClientDocumentKey returns a fresh object key under the client's prefix,
// nested under the project when projectID is set.
func ClientDocumentKey(clientID, projectID, filename string) string {
	parts := []string{clientPrefix, clientID}
	if projectID != "" {
		parts = append(parts, "project-"+projectID)
	}
	return path.Join(append(parts, objectName(filename))...)
}

// AdminDocumentKey returns a fresh object key under the admin's prefix.
func AdminDocumentKey(adminID, filename string) string {
	return path.Join(adminPrefix, "admin-"+adminID, objectName(filename))
}

// objectName never reuses the client-supplied name; only a sanitised extension survives.
func objectName(filename string) string {
	return ulid.Make().String() + extension(filename)
}

func extension(filename string) string {
	ext := strings.ToLower(path.Ext(path.Base(strings.ReplaceAll(filename, "\\", "/"))))
	if len(ext) < 2 || len(ext) > 10 {
		return ""
	}
	for _, r := range ext[1:] {
		if (r < 'a' || r > 'z') && (r < '0' || r > '9') {
			return ""
		}
	}
	return ext
}
