package services

import (
	"io"
	"strings"
	"testing"

	"collegeskills_backend/internal/config"
	"collegeskills_backend/internal/models"
	"collegeskills_backend/internal/repositories"
	"collegeskills_backend/internal/storage"
	"collegeskills_backend/pkg/apperrors"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func newUploadService(t *testing.T, db *gorm.DB) *UploadService {
	t.Helper()
	store, err := storage.NewLocalStorage(config.StorageConfig{
		BasePath: t.TempDir(),
		BaseURL:  "http://localhost:8080/uploads",
	})
	require.NoError(t, err)
	return NewUploadService(
		repositories.NewUploadRepository(db),
		store,
		config.UploadConfig{
			MaxSize:      1 << 20,
			AllowedTypes: []string{"image/png", "application/pdf"},
		},
	)
}

func saveUpload(t *testing.T, svc *UploadService, userID, usage string) string {
	t.Helper()
	content := "fake file bytes"
	resp, err := svc.Save(userID, "scan.pdf", "application/pdf", usage,
		int64(len(content)), strings.NewReader(content))
	require.NoError(t, err)
	return resp.ID
}

func TestUploadService_SaveAndOpen(t *testing.T) {
	db := newTestDB(t)
	svc := newUploadService(t, db)

	owner, _ := seedUser(t, db, "dev@college.edu", models.UserRoleFreelancer)
	id := saveUpload(t, svc, owner.ID, "gig_image")

	rc, upload, err := svc.Open(id, owner.ID, models.UserRoleFreelancer)
	require.NoError(t, err)
	defer rc.Close()

	data, err := io.ReadAll(rc)
	require.NoError(t, err)
	assert.Equal(t, "fake file bytes", string(data))
	assert.Equal(t, "application/pdf", upload.ContentType)
}

func TestUploadService_Save_Limits(t *testing.T) {
	db := newTestDB(t)
	svc := newUploadService(t, db)

	owner, _ := seedUser(t, db, "dev@college.edu", models.UserRoleFreelancer)

	_, err := svc.Save(owner.ID, "huge.pdf", "application/pdf", "gig_image",
		2<<20, strings.NewReader("x"))
	require.Error(t, err)
	var appErr *apperrors.AppError
	require.True(t, apperrors.As(err, &appErr))
	assert.Equal(t, apperrors.CodeValidationFailed, appErr.Code)

	_, err = svc.Save(owner.ID, "evil.exe", "application/x-msdownload", "gig_image",
		10, strings.NewReader("x"))
	require.Error(t, err)
	require.True(t, apperrors.As(err, &appErr))
	assert.Equal(t, apperrors.CodeValidationFailed, appErr.Code)
}

func TestUploadService_Open_IdentityDocumentsPrivate(t *testing.T) {
	db := newTestDB(t)
	svc := newUploadService(t, db)

	owner, _ := seedUser(t, db, "dev@college.edu", models.UserRoleFreelancer)
	stranger, _ := seedUser(t, db, "stranger@example.com", models.UserRoleClient)

	for _, usage := range []string{"student_id", "govt_id"} {
		id := saveUpload(t, svc, owner.ID, usage)

		// Another authenticated user is turned away.
		_, _, err := svc.Open(id, stranger.ID, models.UserRoleClient)
		assert.ErrorIs(t, err, apperrors.ErrInsufficientPermissions, "usage %s", usage)

		// The owner still reads their own document.
		rc, _, err := svc.Open(id, owner.ID, models.UserRoleFreelancer)
		require.NoError(t, err)
		rc.Close()

		// Admins review the document during verification.
		rc, _, err = svc.Open(id, "admin-1", models.UserRoleAdmin)
		require.NoError(t, err)
		rc.Close()
	}
}

func TestUploadService_Open_PublicUsagesStayPublic(t *testing.T) {
	db := newTestDB(t)
	svc := newUploadService(t, db)

	owner, _ := seedUser(t, db, "dev@college.edu", models.UserRoleFreelancer)
	viewer, _ := seedUser(t, db, "viewer@example.com", models.UserRoleClient)
	id := saveUpload(t, svc, owner.ID, "profile_picture")

	rc, _, err := svc.Open(id, viewer.ID, models.UserRoleClient)
	require.NoError(t, err)
	rc.Close()
}

func TestUploadService_Delete_OwnerOnly(t *testing.T) {
	db := newTestDB(t)
	svc := newUploadService(t, db)

	owner, _ := seedUser(t, db, "dev@college.edu", models.UserRoleFreelancer)
	other, _ := seedUser(t, db, "other@example.com", models.UserRoleClient)
	id := saveUpload(t, svc, owner.ID, "gig_image")

	err := svc.Delete(id, other.ID)
	assert.ErrorIs(t, err, apperrors.ErrInsufficientPermissions)

	require.NoError(t, svc.Delete(id, owner.ID))

	_, _, err = svc.Open(id, owner.ID, models.UserRoleFreelancer)
	require.Error(t, err)
	var appErr *apperrors.AppError
	require.True(t, apperrors.As(err, &appErr))
	assert.Equal(t, apperrors.CodeNotFound, appErr.Code)
}
