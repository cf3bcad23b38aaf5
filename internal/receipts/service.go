package receipts

import (
	"context"
	"fmt"
	"io"
	"path"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/opsdeskhq/opsdesk-backend/pkg/config"
	"github.com/opsdeskhq/opsdesk-backend/pkg/db/models"
	pkgerrors "github.com/opsdeskhq/opsdesk-backend/pkg/errors"
	"github.com/opsdeskhq/opsdesk-backend/pkg/storage/gcs"
)

var allowedMimeTypes = map[string]string{
	"application/pdf": ".pdf",
	"image/png":       ".png",
	"image/jpeg":      ".jpg",
	"image/webp":      ".webp",
}

// UploadInput wraps one incoming multipart file.
type UploadInput struct {
	FileName  string
	MimeType  string
	SizeBytes int64
	Body      io.Reader
}

// Service defines the behavior needed by the receipts controller.
type Service interface {
	Upload(ctx context.Context, userID uuid.UUID, input UploadInput) (*ReceiptDTO, error)
	Presign(ctx context.Context, userID uuid.UUID, req PresignRequest) (*PresignResponse, error)
	List(ctx context.Context, userID uuid.UUID) ([]ReceiptDTO, error)
}

type repository interface {
	Create(ctx context.Context, receipt *models.Receipt) error
	ListByUser(ctx context.Context, userID uuid.UUID) ([]models.Receipt, error)
}

type objectStore interface {
	Upload(ctx context.Context, bucket, object, contentType string, body io.Reader) (string, error)
	SignedURL(bucket, object, contentType string, expires time.Duration) (string, error)
	DefaultBucket() string
}

type service struct {
	repo    repository
	store   objectStore
	gcsCfg  config.GCSConfig
	maxSize int64
}

// ServiceParams bundles the dependencies required to build a receipts service.
type ServiceParams struct {
	Repo        repository
	Store       objectStore
	GCSConfig   config.GCSConfig
	ReceiptsCfg config.ReceiptsConfig
}

// NewService constructs a receipts service.
func NewService(params ServiceParams) (Service, error) {
	if params.Repo == nil {
		return nil, fmt.Errorf("receipts repository is required")
	}
	if params.Store == nil {
		return nil, fmt.Errorf("object store is required")
	}
	maxSize := int64(params.ReceiptsCfg.MaxUploadMB) << 20
	if maxSize <= 0 {
		maxSize = 20 << 20
	}
	return &service{
		repo:    params.Repo,
		store:   params.Store,
		gcsCfg:  params.GCSConfig,
		maxSize: maxSize,
	}, nil
}

// Upload streams the file into the bucket, records the metadata row, and
// returns the object URL for the client to copy onto its record. A storage
// failure aborts here; a later record-write failure on the client side can
// leave the object orphaned, which is accepted.
func (s *service) Upload(ctx context.Context, userID uuid.UUID, input UploadInput) (*ReceiptDTO, error) {
	ext, err := s.validateFile(input.FileName, input.MimeType, input.SizeBytes)
	if err != nil {
		return nil, err
	}

	object := objectKey(userID, ext)
	url, err := s.store.Upload(ctx, s.gcsCfg.BucketName, object, input.MimeType, io.LimitReader(input.Body, s.maxSize))
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "upload receipt")
	}

	receipt := &models.Receipt{
		UserID:    userID,
		GCSKey:    object,
		FileName:  path.Base(input.FileName),
		MimeType:  input.MimeType,
		SizeBytes: input.SizeBytes,
		URL:       &url,
	}
	if err := s.repo.Create(ctx, receipt); err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "record receipt")
	}

	return fromModel(receipt, url), nil
}

// Presign hands out a time-limited signed PUT URL so large files go straight
// to the bucket. The metadata row is written up front with the object key.
func (s *service) Presign(ctx context.Context, userID uuid.UUID, req PresignRequest) (*PresignResponse, error) {
	ext, err := s.validateFile(req.FileName, req.ContentType, 0)
	if err != nil {
		return nil, err
	}

	object := objectKey(userID, ext)
	uploadURL, err := s.store.SignedURL(s.gcsCfg.BucketName, object, req.ContentType, s.gcsCfg.UploadURLExpiry)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "sign upload url")
	}

	objectURL := gcs.ObjectURL(s.bucket(), object)
	receipt := &models.Receipt{
		UserID:   userID,
		GCSKey:   object,
		FileName: path.Base(strings.TrimSpace(req.FileName)),
		MimeType: req.ContentType,
		URL:      &objectURL,
	}
	if err := s.repo.Create(ctx, receipt); err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "record receipt")
	}

	return &PresignResponse{
		UploadURL: uploadURL,
		ObjectURL: objectURL,
	}, nil
}

// List returns the user's uploaded receipts, newest first.
func (s *service) List(ctx context.Context, userID uuid.UUID) ([]ReceiptDTO, error) {
	rows, err := s.repo.ListByUser(ctx, userID)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "list receipts")
	}

	out := make([]ReceiptDTO, 0, len(rows))
	for i := range rows {
		url := gcs.ObjectURL(s.bucket(), rows[i].GCSKey)
		if rows[i].URL != nil && *rows[i].URL != "" {
			url = *rows[i].URL
		}
		out = append(out, *fromModel(&rows[i], url))
	}
	return out, nil
}

func (s *service) validateFile(fileName, mimeType string, size int64) (string, error) {
	if strings.TrimSpace(fileName) == "" {
		return "", pkgerrors.New(pkgerrors.CodeValidation, "file name is required")
	}
	ext, ok := allowedMimeTypes[strings.ToLower(strings.TrimSpace(mimeType))]
	if !ok {
		return "", pkgerrors.New(pkgerrors.CodeValidation, "unsupported file type").
			WithDetails(map[string]any{"mime_type": mimeType})
	}
	if size > s.maxSize {
		return "", pkgerrors.New(pkgerrors.CodeValidation, "file too large").
			WithDetails(map[string]any{"max_bytes": s.maxSize})
	}
	return ext, nil
}

func (s *service) bucket() string {
	if s.gcsCfg.BucketName != "" {
		return s.gcsCfg.BucketName
	}
	return s.store.DefaultBucket()
}

func objectKey(userID uuid.UUID, ext string) string {
	return fmt.Sprintf("receipts/%s/%s%s", userID, uuid.NewString(), ext)
}
