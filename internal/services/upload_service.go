package services

import (
	"errors"
	"io"
	"time"

	"collegeskills_backend/internal/config"
	"collegeskills_backend/internal/models"
	"collegeskills_backend/internal/repositories"
	"collegeskills_backend/internal/services/dto"
	"collegeskills_backend/internal/storage"
	"collegeskills_backend/pkg/apperrors"
)

type UploadService struct {
	uploadRepo repositories.UploadRepository
	store      storage.Storage
	cfg        config.UploadConfig
}

func NewUploadService(
	uploadRepo repositories.UploadRepository,
	store storage.Storage,
	cfg config.UploadConfig,
) *UploadService {
	return &UploadService{
		uploadRepo: uploadRepo,
		store:      store,
		cfg:        cfg,
	}
}

func (s *UploadService) Save(userID, fileName, contentType, usage string, size int64, r io.Reader) (*dto.UploadResponse, error) {
	if size > s.cfg.MaxSize {
		return nil, apperrors.NewBadRequestError("file exceeds the maximum allowed size")
	}
	if !s.typeAllowed(contentType) {
		return nil, apperrors.NewBadRequestError("file type is not allowed")
	}

	path, err := s.store.Save(fileName, r)
	if err != nil {
		return nil, apperrors.InternalError(err)
	}

	upload := &models.Upload{
		UserID:      userID,
		FileName:    fileName,
		StoragePath: path,
		ContentType: contentType,
		Size:        size,
		Usage:       usage,
	}
	if err := s.uploadRepo.Create(upload); err != nil {
		s.store.Delete(path)
		return nil, apperrors.InternalError(err)
	}

	resp := s.toUploadResponse(upload)
	return &resp, nil
}

// privateUsages lists attachment kinds only the owner or an admin may
// read back. Identity documents stay private even to other verified
// users.
var privateUsages = map[string]bool{
	"student_id": true,
	"govt_id":    true,
}

func (s *UploadService) Open(id, requesterID string, requesterRole models.UserRole) (io.ReadCloser, *models.Upload, error) {
	upload, err := s.uploadRepo.FindByID(id)
	if err != nil {
		if errors.Is(err, repositories.ErrUploadNotFound) {
			return nil, nil, apperrors.ErrNotFound(err)
		}
		return nil, nil, apperrors.InternalError(err)
	}

	if privateUsages[upload.Usage] &&
		upload.UserID != requesterID && requesterRole != models.UserRoleAdmin {
		return nil, nil, apperrors.ErrInsufficientPermissions
	}

	rc, err := s.store.Open(upload.StoragePath)
	if err != nil {
		return nil, nil, apperrors.InternalError(err)
	}
	return rc, upload, nil
}

func (s *UploadService) Delete(id, userID string) error {
	upload, err := s.uploadRepo.FindByID(id)
	if err != nil {
		if errors.Is(err, repositories.ErrUploadNotFound) {
			return apperrors.ErrNotFound(err)
		}
		return apperrors.InternalError(err)
	}
	if upload.UserID != userID {
		return apperrors.ErrInsufficientPermissions
	}

	if err := s.uploadRepo.Delete(id, userID); err != nil {
		return apperrors.InternalError(err)
	}
	// Orphaned files are tolerable, the record is gone.
	s.store.Delete(upload.StoragePath)
	return nil
}

func (s *UploadService) typeAllowed(contentType string) bool {
	for _, allowed := range s.cfg.AllowedTypes {
		if contentType == allowed {
			return true
		}
	}
	return false
}

func (s *UploadService) toUploadResponse(u *models.Upload) dto.UploadResponse {
	return dto.UploadResponse{
		ID:          u.ID,
		FileName:    u.FileName,
		URL:         s.store.URL(u.StoragePath),
		ContentType: u.ContentType,
		Size:        u.Size,
		Usage:       u.Usage,
		CreatedAt:   u.CreatedAt.Format(time.RFC3339),
	}
}
