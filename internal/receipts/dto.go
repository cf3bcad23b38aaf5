package receipts

import (
	"time"

	"github.com/google/uuid"

	"github.com/opsdeskhq/opsdesk-backend/pkg/db/models"
)

// ReceiptDTO is the transport shape returned after an upload.
type ReceiptDTO struct {
	ID        uuid.UUID `json:"id"`
	FileName  string    `json:"file_name"`
	MimeType  string    `json:"mime_type"`
	SizeBytes int64     `json:"size_bytes"`
	URL       string    `json:"url"`
	CreatedAt time.Time `json:"created_at"`
}

// PresignRequest asks for a signed PUT URL for a client-side upload.
type PresignRequest struct {
	FileName    string `json:"file_name" validate:"required,max=255"`
	ContentType string `json:"content_type" validate:"required,max=100"`
}

// PresignResponse carries the signed upload URL and the object's eventual
// public URL for the client to store on the record.
type PresignResponse struct {
	UploadURL string `json:"upload_url"`
	ObjectURL string `json:"object_url"`
}

func fromModel(r *models.Receipt, url string) *ReceiptDTO {
	if r == nil {
		return nil
	}
	return &ReceiptDTO{
		ID:        r.ID,
		FileName:  r.FileName,
		MimeType:  r.MimeType,
		SizeBytes: r.SizeBytes,
		URL:       url,
		CreatedAt: r.CreatedAt,
	}
}
