package services

import (
	"bufio"
	"context"
	"fmt"
	"mime"
	"net/http"
	"os"
	"path/filepath"
	"strings"

	"github.com/dmitrijs2005/casedesk/internal/client/backend"
	"github.com/dmitrijs2005/casedesk/internal/client/models"
	"github.com/dmitrijs2005/casedesk/internal/common"
)

type UploadService interface {
	// UploadImage sends an image; other content types are rejected.
	UploadImage(ctx context.Context, u backend.Upload) (models.UploadResult, error)
	// UploadFile sends the file at path through the same upload path,
	// whatever its type.
	UploadFile(ctx context.Context, path string) (models.UploadResult, error)
}

type uploadService struct {
	backend backend.Backend
}

func NewUploadService(b backend.Backend) UploadService {
	return &uploadService{backend: b}
}

func (s *uploadService) UploadImage(ctx context.Context, u backend.Upload) (models.UploadResult, error) {
	if !strings.HasPrefix(u.ContentType, "image/") {
		return models.UploadResult{}, common.Validation(fmt.Sprintf("not an image: %q", u.ContentType))
	}
	return s.upload(ctx, u)
}

func (s *uploadService) UploadFile(ctx context.Context, path string) (models.UploadResult, error) {
	f, err := os.Open(path)
	if err != nil {
		return models.UploadResult{}, fmt.Errorf("open %s: %w", path, err)
	}
	defer f.Close()

	r := bufio.NewReader(f)
	return s.upload(ctx, backend.Upload{
		FileName:    filepath.Base(path),
		ContentType: contentType(path, r),
		Content:     r,
	})
}

func (s *uploadService) upload(ctx context.Context, u backend.Upload) (models.UploadResult, error) {
	res, err := s.backend.UploadImage(ctx, u)
	if err != nil {
		return models.UploadResult{}, fmt.Errorf("upload %s: %w", u.FileName, err)
	}
	return res, nil
}

// contentType goes by extension first and sniffs the leading bytes
// otherwise. Peeking leaves r positioned at the start.
func contentType(path string, r *bufio.Reader) string {
	if ct := mime.TypeByExtension(filepath.Ext(path)); ct != "" {
		return ct
	}
	head, _ := r.Peek(512)
	return http.DetectContentType(head)
}
