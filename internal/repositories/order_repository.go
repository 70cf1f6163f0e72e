package repositories

import (
	"errors"

	"collegeskills_backend/internal/models"

	"gorm.io/gorm"
)

var ErrOrderNotFound = errors.New("order not found")

type OrderRepository interface {
	Create(order *models.Order) error
	FindByID(id string) (*models.Order, error)
	FindByProposalID(proposalID string) (*models.Order, error)
	ListByClient(clientID string) ([]models.Order, error)
	ListByFreelancer(freelancerID string) ([]models.Order, error)
	Update(order *models.Order) error
	UpdateStatus(id string, status models.OrderStatus) error
	WithTx(tx *gorm.DB) OrderRepository
}

type OrderRepositoryImpl struct {
	db *gorm.DB
}

func NewOrderRepository(db *gorm.DB) OrderRepository {
	return &OrderRepositoryImpl{db: db}
}

func (r *OrderRepositoryImpl) WithTx(tx *gorm.DB) OrderRepository {
	return &OrderRepositoryImpl{db: tx}
}

func (r *OrderRepositoryImpl) Create(order *models.Order) error {
	return r.db.Create(order).Error
}

func (r *OrderRepositoryImpl) FindByID(id string) (*models.Order, error) {
	var order models.Order
	err := r.db.First(&order, "id = ?", id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrOrderNotFound
		}
		return nil, err
	}
	return &order, nil
}

func (r *OrderRepositoryImpl) FindByProposalID(proposalID string) (*models.Order, error) {
	var order models.Order
	err := r.db.First(&order, "proposal_id = ?", proposalID).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrOrderNotFound
		}
		return nil, err
	}
	return &order, nil
}

func (r *OrderRepositoryImpl) ListByClient(clientID string) ([]models.Order, error) {
	var orders []models.Order
	err := r.db.Where("client_id = ?", clientID).
		Order("created_at DESC").
		Find(&orders).Error
	if err != nil {
		return nil, err
	}
	return orders, nil
}

func (r *OrderRepositoryImpl) ListByFreelancer(freelancerID string) ([]models.Order, error) {
	var orders []models.Order
	err := r.db.Where("freelancer_id = ?", freelancerID).
		Order("created_at DESC").
		Find(&orders).Error
	if err != nil {
		return nil, err
	}
	return orders, nil
}

func (r *OrderRepositoryImpl) Update(order *models.Order) error {
	return r.db.Save(order).Error
}

func (r *OrderRepositoryImpl) UpdateStatus(id string, status models.OrderStatus) error {
	return r.db.Model(&models.Order{}).
		Where("id = ?", id).
		Update("status", string(status)).Error
}
