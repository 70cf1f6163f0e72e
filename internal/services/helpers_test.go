package services

import (
	"context"
	"fmt"
	"testing"
	"time"

	"collegeskills_backend/internal/config"
	"collegeskills_backend/internal/models"
	"collegeskills_backend/internal/repositories"
	"collegeskills_backend/internal/services/razorpay"

	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

func init() {
	// Token issuance reads the global config; keep it off the yaml path.
	config.AppConfig = &config.Config{
		JWT: config.JWTConfig{Secret: "test_secret_do_not_use", TTL: 60},
	}
}

func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	dsn := fmt.Sprintf("file:%s_%d?mode=memory&cache=shared", t.Name(), time.Now().UnixNano())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{})
	require.NoError(t, err, "open sqlite")
	createCoreTables(t, db)
	return db
}

func mustExec(t *testing.T, db *gorm.DB, q string, args ...interface{}) {
	t.Helper()
	require.NoError(t, db.Exec(q, args...).Error, "exec failed: query=%s", q)
}

// createCoreTables builds the schema by hand. The production DDL comes
// from AutoMigrate against postgres; sqlite chokes on some of its
// defaults, so tests declare equivalent tables directly.
func createCoreTables(t *testing.T, db *gorm.DB) {
	t.Helper()
	mustExec(t, db, `CREATE TABLE users (
		id TEXT PRIMARY KEY,
		created_at DATETIME,
		updated_at DATETIME,
		email TEXT UNIQUE NOT NULL,
		password_hash TEXT NOT NULL,
		role TEXT NOT NULL,
		status TEXT DEFAULT 'active'
	);`)
	mustExec(t, db, `CREATE TABLE profiles (
		id TEXT PRIMARY KEY,
		created_at DATETIME,
		updated_at DATETIME,
		user_id TEXT UNIQUE NOT NULL,
		user_type TEXT NOT NULL,
		first_name TEXT NOT NULL,
		last_name TEXT NOT NULL,
		bio TEXT,
		profile_picture_id TEXT,
		college_name TEXT,
		college_email TEXT,
		graduation_year INTEGER,
		skills TEXT,
		is_verified BOOLEAN DEFAULT FALSE,
		student_id_upload TEXT,
		razorpay_account_id TEXT,
		company TEXT,
		average_rating REAL,
		total_reviews INTEGER DEFAULT 0
	);`)
	mustExec(t, db, `CREATE TABLE project_requests (
		id TEXT PRIMARY KEY,
		created_at DATETIME,
		updated_at DATETIME,
		client_id TEXT NOT NULL,
		title TEXT NOT NULL,
		description TEXT,
		category TEXT,
		budget_min REAL,
		budget_max REAL,
		deadline DATETIME,
		skills TEXT,
		status TEXT DEFAULT 'open',
		selected_freelancer_id TEXT,
		proposal_count INTEGER DEFAULT 0
	);`)
	mustExec(t, db, `CREATE TABLE proposals (
		id TEXT PRIMARY KEY,
		created_at DATETIME,
		updated_at DATETIME,
		project_id TEXT NOT NULL,
		freelancer_id TEXT NOT NULL,
		cover_letter TEXT,
		proposed_price REAL,
		delivery_time INTEGER,
		status TEXT DEFAULT 'pending'
	);`)
	mustExec(t, db, `CREATE TABLE orders (
		id TEXT PRIMARY KEY,
		created_at DATETIME,
		updated_at DATETIME,
		project_id TEXT NOT NULL,
		proposal_id TEXT UNIQUE NOT NULL,
		client_id TEXT NOT NULL,
		freelancer_id TEXT NOT NULL,
		title TEXT,
		price REAL,
		delivery_time INTEGER,
		status TEXT DEFAULT 'pending_payment',
		delivery_message TEXT,
		delivered_at DATETIME,
		completed_at DATETIME
	);`)
	mustExec(t, db, `CREATE TABLE payments (
		id TEXT PRIMARY KEY,
		created_at DATETIME,
		updated_at DATETIME,
		order_id TEXT NOT NULL,
		razorpay_order_id TEXT UNIQUE NOT NULL,
		razorpay_transfer_id TEXT,
		amount REAL,
		status TEXT DEFAULT 'pending'
	);`)
	mustExec(t, db, `CREATE TABLE verification_requests (
		id TEXT PRIMARY KEY,
		created_at DATETIME,
		updated_at DATETIME,
		user_id TEXT NOT NULL,
		college_email TEXT NOT NULL,
		college_name TEXT NOT NULL,
		course TEXT,
		department TEXT,
		student_id_upload TEXT,
		govt_id_upload TEXT,
		status TEXT DEFAULT 'pending',
		admin_notes TEXT,
		reviewed_by TEXT,
		reviewed_at DATETIME
	);`)
	mustExec(t, db, `CREATE TABLE reviews (
		id TEXT PRIMARY KEY,
		created_at DATETIME,
		updated_at DATETIME,
		order_id TEXT UNIQUE NOT NULL,
		reviewer_id TEXT NOT NULL,
		reviewee_id TEXT NOT NULL,
		rating INTEGER NOT NULL,
		comment TEXT,
		is_public BOOLEAN DEFAULT TRUE
	);`)
	mustExec(t, db, `CREATE TABLE notifications (
		id TEXT PRIMARY KEY,
		created_at DATETIME,
		updated_at DATETIME,
		user_id TEXT NOT NULL,
		type TEXT NOT NULL,
		message TEXT,
		link TEXT,
		is_read BOOLEAN DEFAULT FALSE,
		read_at DATETIME
	);`)
	mustExec(t, db, `CREATE TABLE gigs (
		id TEXT PRIMARY KEY,
		created_at DATETIME,
		updated_at DATETIME,
		freelancer_id TEXT NOT NULL,
		title TEXT NOT NULL,
		description TEXT,
		category TEXT,
		subcategory TEXT,
		tags TEXT,
		base_price REAL,
		delivery_time INTEGER,
		images TEXT,
		is_active BOOLEAN DEFAULT TRUE,
		total_orders INTEGER DEFAULT 0,
		average_rating REAL
	);`)
	mustExec(t, db, `CREATE TABLE conversations (
		id TEXT PRIMARY KEY,
		created_at DATETIME,
		updated_at DATETIME,
		project_id TEXT NOT NULL,
		client_id TEXT NOT NULL,
		freelancer_id TEXT NOT NULL,
		last_message TEXT,
		last_message_at DATETIME,
		UNIQUE (project_id, client_id, freelancer_id)
	);`)
	mustExec(t, db, `CREATE TABLE messages (
		id TEXT PRIMARY KEY,
		created_at DATETIME,
		updated_at DATETIME,
		conversation_id TEXT NOT NULL,
		sender_id TEXT NOT NULL,
		text TEXT NOT NULL,
		seen BOOLEAN DEFAULT FALSE
	);`)
	mustExec(t, db, `CREATE TABLE uploads (
		id TEXT PRIMARY KEY,
		created_at DATETIME,
		updated_at DATETIME,
		user_id TEXT NOT NULL,
		file_name TEXT NOT NULL,
		storage_path TEXT NOT NULL,
		content_type TEXT,
		size INTEGER,
		usage TEXT
	);`)
	mustExec(t, db, `CREATE TABLE activity_logs (
		id TEXT PRIMARY KEY,
		created_at DATETIME,
		updated_at DATETIME,
		user_id TEXT NOT NULL,
		action TEXT NOT NULL,
		details TEXT,
		related_id TEXT
	);`)
}

func seedUser(t *testing.T, db *gorm.DB, email string, role models.UserRole) (*models.User, *models.Profile) {
	t.Helper()

	user := &models.User{
		Email:        email,
		PasswordHash: "not-a-real-hash",
		Role:         role,
		Status:       models.UserStatusActive,
	}
	require.NoError(t, db.Create(user).Error)

	profile := &models.Profile{
		UserID:    user.ID,
		UserType:  role,
		FirstName: "Test",
		LastName:  "User",
	}
	require.NoError(t, db.Create(profile).Error)
	return user, profile
}

func verifyProfile(t *testing.T, db *gorm.DB, profileID string) {
	t.Helper()
	require.NoError(t, db.Model(&models.Profile{}).Where("id = ?", profileID).
		Update("is_verified", true).Error)
}

func seedProject(t *testing.T, db *gorm.DB, clientID string, skills []string) *models.ProjectRequest {
	t.Helper()

	project := &models.ProjectRequest{
		ClientID:    clientID,
		Title:       "Landing page",
		Description: "Build a landing page",
		Category:    "web-development",
		BudgetMin:   1000,
		BudgetMax:   5000,
		Status:      models.ProjectStatusOpen,
	}
	require.NoError(t, project.SetSkills(skills))
	require.NoError(t, db.Create(project).Error)
	return project
}

func seedProposal(t *testing.T, db *gorm.DB, projectID, freelancerID string, status models.ProposalStatus) *models.Proposal {
	t.Helper()

	proposal := &models.Proposal{
		ProjectID:     projectID,
		FreelancerID:  freelancerID,
		CoverLetter:   "I have shipped three similar projects during my degree.",
		ProposedPrice: 3000,
		DeliveryTime:  7,
		Status:        status,
	}
	require.NoError(t, db.Create(proposal).Error)
	return proposal
}

func mustParseTime(t *testing.T, value string) time.Time {
	t.Helper()
	parsed, err := time.Parse(time.RFC3339, value)
	require.NoError(t, err)
	return parsed
}

func notificationsFor(t *testing.T, db *gorm.DB, userID string) []models.Notification {
	t.Helper()
	var out []models.Notification
	require.NoError(t, db.Where("user_id = ?", userID).Find(&out).Error)
	return out
}

func newNotificationService(db *gorm.DB) *NotificationService {
	return NewNotificationService(repositories.NewNotificationRepository(db), nil)
}

func newActivityService(db *gorm.DB) *ActivityService {
	return NewActivityService(repositories.NewActivityRepository(db))
}

// fakeGateway is an in-memory razorpay.Client.
type fakeGateway struct {
	orderSeq         int
	transferSeq      int
	failOrders       bool
	transfers        []razorpay.Transfer
	captureTransfers []razorpay.Transfer
}

func (f *fakeGateway) CreateOrder(_ context.Context, amount float64, receipt string, _ map[string]string) (*razorpay.Order, error) {
	if f.failOrders {
		return nil, fmt.Errorf("gateway unavailable")
	}
	f.orderSeq++
	return &razorpay.Order{
		ID:       fmt.Sprintf("order_fake_%d", f.orderSeq),
		Amount:   int64(amount * 100),
		Currency: "INR",
		Receipt:  receipt,
		Status:   "created",
	}, nil
}

func (f *fakeGateway) FetchPaymentForOrder(_ context.Context, razorpayOrderID string) (*razorpay.PaymentEntity, error) {
	return &razorpay.PaymentEntity{
		ID:       "pay_fake_1",
		OrderID:  razorpayOrderID,
		Status:   "captured",
		Captured: true,
	}, nil
}

func (f *fakeGateway) CreateLinkedAccount(_ context.Context, _ razorpay.AccountRequest) (*razorpay.Account, error) {
	return &razorpay.Account{ID: "acc_fake_1", Status: "activated"}, nil
}

func (f *fakeGateway) FetchTransfersForPayment(_ context.Context, _ string) ([]razorpay.Transfer, error) {
	return f.captureTransfers, nil
}

func (f *fakeGateway) CreateTransfer(_ context.Context, paymentID string, amount float64, accountID string) (*razorpay.Transfer, error) {
	f.transferSeq++
	transfer := razorpay.Transfer{
		ID:        fmt.Sprintf("trf_fake_%d", f.transferSeq),
		PaymentID: paymentID,
		Amount:    int64(amount * 100),
		Recipient: accountID,
		Status:    "processed",
	}
	f.transfers = append(f.transfers, transfer)
	return &transfer, nil
}

func newPaymentService(db *gorm.DB, gateway razorpay.Client) *PaymentService {
	return NewPaymentService(
		db,
		repositories.NewPaymentRepository(db),
		repositories.NewOrderRepository(db),
		repositories.NewProposalRepository(db),
		repositories.NewProjectRepository(db),
		repositories.NewProfileRepository(db),
		repositories.NewUserRepository(db),
		gateway,
		newNotificationService(db),
		newActivityService(db),
		config.RazorpayConfig{KeyID: "rzp_test_key", Currency: "INR"},
	)
}
