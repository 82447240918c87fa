package service

import (
	"context"
	"fmt"
	"io"
	"mime/multipart"
	"os"
	"path/filepath"
	"strings"
	"time"

	"communityhub-be/internal/dto"
	"communityhub-be/internal/pkg/apperror"
	"communityhub-be/internal/pkg/logger"

	"github.com/google/uuid"
)

// maxUploadBytes caps a single file; the directory quota caps the total.
const maxUploadBytes = 20 * 1024 * 1024

var allowedUploadExts = map[string]bool{
	".jpg": true, ".jpeg": true, ".png": true, ".gif": true, ".webp": true,
	".pdf": true, ".mp3": true, ".mp4": true,
}

type IMediaService interface {
	Upload(ctx context.Context, file *multipart.FileHeader, actor string) (*dto.UploadResponse, error)
}

type mediaService struct {
	uploadDir  string
	baseURL    string
	quotaBytes int64
	audit      IAuditService
	logger     logger.ILogger
}

func NewMediaService(uploadDir, baseURL string, quotaBytes int64, audit IAuditService, log logger.ILogger) IMediaService {
	return &mediaService{
		uploadDir:  uploadDir,
		baseURL:    baseURL,
		quotaBytes: quotaBytes,
		audit:      audit,
		logger:     log,
	}
}

func (s *mediaService) Upload(ctx context.Context, file *multipart.FileHeader, actor string) (*dto.UploadResponse, error) {
	if file.Size > maxUploadBytes {
		return nil, apperror.NewValidation("file too large (max 20MB)")
	}

	ext := strings.ToLower(filepath.Ext(file.Filename))
	if !allowedUploadExts[ext] {
		return nil, apperror.NewValidation("unsupported file type")
	}

	used, err := s.dirSize()
	if err != nil {
		return nil, err
	}
	if used+file.Size > s.quotaBytes {
		return nil, apperror.NewValidation("upload quota exceeded")
	}

	src, err := file.Open()
	if err != nil {
		return nil, err
	}
	defer src.Close()

	if err := os.MkdirAll(s.uploadDir, 0755); err != nil {
		return nil, err
	}

	filename := fmt.Sprintf("%s_%d%s", uuid.New().String(), time.Now().Unix(), ext)
	dstPath := filepath.Join(s.uploadDir, filename)

	dst, err := os.Create(dstPath)
	if err != nil {
		return nil, err
	}
	defer dst.Close()

	if _, err := io.Copy(dst, src); err != nil {
		os.Remove(dstPath)
		return nil, err
	}

	s.audit.Record(ctx, "media.uploaded", actor, filename)

	return &dto.UploadResponse{
		FileName: filename,
		URL:      fmt.Sprintf("%s/uploads/%s", s.baseURL, filename),
		Size:     file.Size,
	}, nil
}

func (s *mediaService) dirSize() (int64, error) {
	var total int64
	err := filepath.Walk(s.uploadDir, func(_ string, info os.FileInfo, err error) error {
		if err != nil {
			if os.IsNotExist(err) {
				return nil
			}
			return err
		}
		if !info.IsDir() {
			total += info.Size()
		}
		return nil
	})
	if err != nil && !os.IsNotExist(err) {
		return 0, err
	}
	return total, nil
}
