package models

import (
	"time"

	"github.com/google/uuid"
)

// Receipt captures metadata for an uploaded receipt/invoice object. The
// object URL is copied onto the subscription or equipment record by the
// client after upload.
type Receipt struct {
	ID        uuid.UUID `gorm:"column:id;type:uuid;default:gen_random_uuid();primaryKey" json:"id"`
	UserID    uuid.UUID `gorm:"column:user_id;type:uuid;not null;index" json:"user_id"`
	GCSKey    string    `gorm:"column:gcs_key;not null;unique" json:"gcs_key"`
	FileName  string    `gorm:"column:file_name;not null" json:"file_name"`
	MimeType  string    `gorm:"column:mime_type;not null" json:"mime_type"`
	SizeBytes int64     `gorm:"column:size_bytes;not null" json:"size_bytes"`
	URL       *string   `gorm:"column:url" json:"url,omitempty"`
	CreatedAt time.Time `gorm:"column:created_at;autoCreateTime" json:"created_at"`
}
