package repositories

import (
	"errors"

	"chainwork_backend/internal/models"

	"gorm.io/gorm"
)

var (
	ErrPaymentNotFound          = errors.New("payment not found")
	ErrDuplicateTransactionHash = errors.New("transaction hash already recorded")
)

type PaymentRepository interface {
	// Create relies on the unique index on transaction_hash: recording the
	// same hash twice fails at the store, not via a racy pre-check.
	Create(payment *models.Payment) error
	FindByID(id string) (*models.Payment, error)
	FindByTransactionHash(hash string) (*models.Payment, error)
	FindByUser(userID string, page, limit int) ([]models.Payment, int64, error)
}

type PaymentRepositoryImpl struct {
	db *gorm.DB
}

func NewPaymentRepository(db *gorm.DB) PaymentRepository {
	return &PaymentRepositoryImpl{db: db}
}

func (r *PaymentRepositoryImpl) Create(payment *models.Payment) error {
	err := r.db.Create(payment).Error
	if err != nil && isUniqueViolation(err) {
		return ErrDuplicateTransactionHash
	}
	return err
}

func (r *PaymentRepositoryImpl) FindByID(id string) (*models.Payment, error) {
	var payment models.Payment
	err := r.db.Where("id = ?", id).First(&payment).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrPaymentNotFound
	}
	return &payment, err
}

func (r *PaymentRepositoryImpl) FindByTransactionHash(hash string) (*models.Payment, error) {
	var payment models.Payment
	err := r.db.Where("transaction_hash = ?", hash).First(&payment).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrPaymentNotFound
	}
	return &payment, err
}

func (r *PaymentRepositoryImpl) FindByUser(userID string, page, limit int) ([]models.Payment, int64, error) {
	base := r.db.Model(&models.Payment{}).Where("user_id = ?", userID)

	var total int64
	if err := base.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	p := NewPagination(page, limit, total)

	var payments []models.Payment
	err := base.Order("created_at DESC").
		Offset(p.Offset()).Limit(p.Limit).
		Find(&payments).Error
	return payments, total, err
}
