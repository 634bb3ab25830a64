package repository

import (
	"context"

	"j5pharmacy/internal/model"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type CustomerRepository interface {
	Create(ctx context.Context, c *model.Customer) error
	FindByID(ctx context.Context, id uuid.UUID) (*model.Customer, error)
	FindByCardID(ctx context.Context, cardID string) (*model.Customer, error)
	Search(ctx context.Context, query string, limit int) ([]model.Customer, error)
	Update(ctx context.Context, c *model.Customer) error
	DB() *gorm.DB

	// Used inside transactions — callers must pass the tx instance
	FindByIDTx(tx *gorm.DB, id uuid.UUID) (*model.Customer, error)
	SetActiveTx(tx *gorm.DB, id uuid.UUID, active bool) error
	CreateTx(tx *gorm.DB, c *model.Customer) error
	DeleteTx(tx *gorm.DB, id uuid.UUID) error
}

type customerRepo struct{ db *gorm.DB }

func NewCustomerRepository(db *gorm.DB) CustomerRepository { return &customerRepo{db: db} }

func (r *customerRepo) DB() *gorm.DB { return r.db }

func (r *customerRepo) Create(ctx context.Context, c *model.Customer) error {
	return r.db.WithContext(ctx).Create(c).Error
}

func (r *customerRepo) FindByID(ctx context.Context, id uuid.UUID) (*model.Customer, error) {
	var c model.Customer
	err := r.db.WithContext(ctx).First(&c, id).Error
	return &c, err
}

func (r *customerRepo) FindByCardID(ctx context.Context, cardID string) (*model.Customer, error) {
	var c model.Customer
	err := r.db.WithContext(ctx).Where("card_id = ? AND is_active = true", cardID).First(&c).Error
	return &c, err
}

func (r *customerRepo) Search(ctx context.Context, query string, limit int) ([]model.Customer, error) {
	var list []model.Customer
	err := r.db.WithContext(ctx).
		Where("is_active = true").
		Where("name ILIKE ? OR phone ILIKE ? OR card_id = ?", "%"+query+"%", "%"+query+"%", query).
		Order("name ASC").
		Limit(limit).
		Find(&list).Error
	return list, err
}

func (r *customerRepo) Update(ctx context.Context, c *model.Customer) error {
	return r.db.WithContext(ctx).Save(c).Error
}

// FindByIDTx row-locks the customer so the archive snapshot cannot race a
// concurrent update.
func (r *customerRepo) FindByIDTx(tx *gorm.DB, id uuid.UUID) (*model.Customer, error) {
	var c model.Customer
	err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).First(&c, id).Error
	return &c, err
}

func (r *customerRepo) SetActiveTx(tx *gorm.DB, id uuid.UUID, active bool) error {
	return tx.Model(&model.Customer{}).Where("id = ?", id).Update("is_active", active).Error
}

func (r *customerRepo) CreateTx(tx *gorm.DB, c *model.Customer) error {
	return tx.Create(c).Error
}

func (r *customerRepo) DeleteTx(tx *gorm.DB, id uuid.UUID) error {
	return tx.Delete(&model.Customer{}, id).Error
}
