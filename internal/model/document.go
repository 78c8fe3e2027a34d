package model

import "time"

// DocumentCategory classifies client documents.
type DocumentCategory string

const (
	CategoryContract DocumentCategory = "contract"
	CategoryInvoice  DocumentCategory = "invoice"
	CategoryReport   DocumentCategory = "report"
	CategoryProposal DocumentCategory = "proposal"
	CategoryOther    DocumentCategory = "other"
)

// Valid reports whether c is a known category.
func (c DocumentCategory) Valid() bool {
	switch c {
	case CategoryContract, CategoryInvoice, CategoryReport, CategoryProposal, CategoryOther:
		return true
	}
	return false
}

// ClientDocument is a file uploaded by a client. Only the object store
// locator and metadata are kept; the bytes live in the object store.
type ClientDocument struct {
	ID          string           `json:"id"`
	ClientID    string           `json:"clientId"`
	ProjectID   *string          `json:"projectId,omitempty"`
	Title       string           `json:"title"`
	Description string           `json:"description,omitempty"`
	Category    DocumentCategory `json:"category"`
	Tags        []string         `json:"tags"`
	FileURL     string           `json:"fileUrl"`
	ObjectKey   string           `json:"objectKey"`
	Checksum    string           `json:"checksum"`
	FileType    string           `json:"fileType"`
	FileSize    int64            `json:"fileSize"`
	UploadedBy  string           `json:"uploadedBy"`
	UploadedAt  time.Time        `json:"uploadedAt"`
}

// AdminDocument is an internal file owned by the admin who uploaded it.
type AdminDocument struct {
	ID          string    `json:"id"`
	UploadedBy  string    `json:"uploadedBy"`
	Title       string    `json:"title"`
	Description string    `json:"description,omitempty"`
	Category    string    `json:"category,omitempty"`
	Project     string    `json:"project,omitempty"`
	FileURL     string    `json:"fileUrl"`
	FileName    string    `json:"fileName"`
	ObjectKey   string    `json:"objectKey"`
	Checksum    string    `json:"checksum"`
	FileSize    int64     `json:"fileSize"`
	FileType    string    `json:"fileType"`
	CreatedAt   time.Time `json:"createdAt"`
}
