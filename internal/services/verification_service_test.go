package services

import (
	"testing"

	"collegeskills_backend/internal/config"
	"collegeskills_backend/internal/email"
	"collegeskills_backend/internal/models"
	"collegeskills_backend/internal/repositories"
	"collegeskills_backend/internal/services/dto"
	"collegeskills_backend/pkg/apperrors"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func newVerificationService(db *gorm.DB) *VerificationService {
	return NewVerificationService(
		repositories.NewVerificationRepository(db),
		repositories.NewProfileRepository(db),
		repositories.NewUserRepository(db),
		newNotificationService(db),
		newActivityService(db),
		email.NewProvider(config.EmailConfig{Enabled: false}),
	)
}

func TestVerificationService_Submit(t *testing.T) {
	db := newTestDB(t)
	svc := newVerificationService(db)

	freelancer, _ := seedUser(t, db, "dev@college.edu", models.UserRoleFreelancer)

	resp, err := svc.Submit(freelancer.ID, &dto.SubmitVerificationRequest{
		CollegeEmail: "dev@iitb.ac.in",
		CollegeName:  "IIT Bombay",
	})
	require.NoError(t, err)
	assert.Equal(t, string(models.VerificationStatusPending), resp.Status)
	assert.Equal(t, "IIT Bombay", resp.CollegeName)
}

func TestVerificationService_Submit_DuplicatePending(t *testing.T) {
	db := newTestDB(t)
	svc := newVerificationService(db)

	freelancer, _ := seedUser(t, db, "dev@college.edu", models.UserRoleFreelancer)

	_, err := svc.Submit(freelancer.ID, &dto.SubmitVerificationRequest{
		CollegeEmail: "dev@iitb.ac.in",
		CollegeName:  "IIT Bombay",
	})
	require.NoError(t, err)

	_, err = svc.Submit(freelancer.ID, &dto.SubmitVerificationRequest{
		CollegeEmail: "dev@iitb.ac.in",
		CollegeName:  "IIT Bombay",
	})
	require.Error(t, err)

	var appErr *apperrors.AppError
	require.True(t, apperrors.As(err, &appErr))
	assert.Equal(t, apperrors.CodeConflict, appErr.Code)
}

func TestVerificationService_Submit_ClientForbidden(t *testing.T) {
	db := newTestDB(t)
	svc := newVerificationService(db)

	client, _ := seedUser(t, db, "client@example.com", models.UserRoleClient)

	_, err := svc.Submit(client.ID, &dto.SubmitVerificationRequest{
		CollegeEmail: "client@iitb.ac.in",
		CollegeName:  "IIT Bombay",
	})
	assert.ErrorIs(t, err, apperrors.ErrInsufficientPermissions)
}

func TestVerificationService_Review_Approve(t *testing.T) {
	db := newTestDB(t)
	svc := newVerificationService(db)

	admin, _ := seedUser(t, db, "admin@collegeskills.in", models.UserRoleAdmin)
	freelancer, freelancerProfile := seedUser(t, db, "dev@college.edu", models.UserRoleFreelancer)

	submitted, err := svc.Submit(freelancer.ID, &dto.SubmitVerificationRequest{
		CollegeEmail: "dev@iitb.ac.in",
		CollegeName:  "IIT Bombay",
	})
	require.NoError(t, err)

	reviewed, err := svc.Review(submitted.ID, admin.ID, &dto.ReviewVerificationRequest{
		Decision: "approve",
	})
	require.NoError(t, err)
	assert.Equal(t, string(models.VerificationStatusApproved), reviewed.Status)
	require.NotNil(t, reviewed.ReviewedAt)

	// Approval stamps the college identity onto the profile.
	var reloaded models.Profile
	require.NoError(t, db.First(&reloaded, "id = ?", freelancerProfile.ID).Error)
	assert.True(t, reloaded.IsVerified)
	require.NotNil(t, reloaded.CollegeName)
	assert.Equal(t, "IIT Bombay", *reloaded.CollegeName)
	require.NotNil(t, reloaded.CollegeEmail)
	assert.Equal(t, "dev@iitb.ac.in", *reloaded.CollegeEmail)

	notifs := notificationsFor(t, db, freelancer.ID)
	require.Len(t, notifs, 1)
	assert.Equal(t, NotificationVerificationResult, notifs[0].Type)
}

func TestVerificationService_Review_Reject(t *testing.T) {
	db := newTestDB(t)
	svc := newVerificationService(db)

	admin, _ := seedUser(t, db, "admin@collegeskills.in", models.UserRoleAdmin)
	freelancer, freelancerProfile := seedUser(t, db, "dev@college.edu", models.UserRoleFreelancer)

	submitted, err := svc.Submit(freelancer.ID, &dto.SubmitVerificationRequest{
		CollegeEmail: "dev@iitb.ac.in",
		CollegeName:  "IIT Bombay",
	})
	require.NoError(t, err)

	notes := "ID card is unreadable"
	reviewed, err := svc.Review(submitted.ID, admin.ID, &dto.ReviewVerificationRequest{
		Decision:   "reject",
		AdminNotes: &notes,
	})
	require.NoError(t, err)
	assert.Equal(t, string(models.VerificationStatusRejected), reviewed.Status)

	var reloaded models.Profile
	require.NoError(t, db.First(&reloaded, "id = ?", freelancerProfile.ID).Error)
	assert.False(t, reloaded.IsVerified)

	// A rejected freelancer can file again.
	_, err = svc.Submit(freelancer.ID, &dto.SubmitVerificationRequest{
		CollegeEmail: "dev@iitb.ac.in",
		CollegeName:  "IIT Bombay",
	})
	require.NoError(t, err)
}

func TestVerificationService_Review_NonAdminForbidden(t *testing.T) {
	db := newTestDB(t)
	svc := newVerificationService(db)

	client, _ := seedUser(t, db, "client@example.com", models.UserRoleClient)
	freelancer, _ := seedUser(t, db, "dev@college.edu", models.UserRoleFreelancer)

	submitted, err := svc.Submit(freelancer.ID, &dto.SubmitVerificationRequest{
		CollegeEmail: "dev@iitb.ac.in",
		CollegeName:  "IIT Bombay",
	})
	require.NoError(t, err)

	_, err = svc.Review(submitted.ID, client.ID, &dto.ReviewVerificationRequest{Decision: "approve"})
	assert.ErrorIs(t, err, apperrors.ErrInsufficientPermissions)
}

func TestVerificationService_Review_AlreadyReviewed(t *testing.T) {
	db := newTestDB(t)
	svc := newVerificationService(db)

	admin, _ := seedUser(t, db, "admin@collegeskills.in", models.UserRoleAdmin)
	freelancer, _ := seedUser(t, db, "dev@college.edu", models.UserRoleFreelancer)

	submitted, err := svc.Submit(freelancer.ID, &dto.SubmitVerificationRequest{
		CollegeEmail: "dev@iitb.ac.in",
		CollegeName:  "IIT Bombay",
	})
	require.NoError(t, err)

	_, err = svc.Review(submitted.ID, admin.ID, &dto.ReviewVerificationRequest{Decision: "approve"})
	require.NoError(t, err)

	_, err = svc.Review(submitted.ID, admin.ID, &dto.ReviewVerificationRequest{Decision: "reject"})
	require.Error(t, err)

	var appErr *apperrors.AppError
	require.True(t, apperrors.As(err, &appErr))
	assert.Equal(t, apperrors.CodeInvalidStatus, appErr.Code)
}
