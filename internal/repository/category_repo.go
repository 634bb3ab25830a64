package repository

import (
	"context"

	"j5pharmacy/internal/model"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type CategoryRepository interface {
	Create(ctx context.Context, c *model.Category) error
	FindByID(ctx context.Context, id uuid.UUID) (*model.Category, error)
	FindByName(ctx context.Context, name string) (*model.Category, error)
	List(ctx context.Context) ([]model.Category, error)
	Update(ctx context.Context, c *model.Category) error
	DB() *gorm.DB

	// Used inside transactions — callers must pass the tx instance
	FindByIDTx(tx *gorm.DB, id uuid.UUID) (*model.Category, error)
	FindByNameTx(tx *gorm.DB, name string) (*model.Category, error)
	CreateTx(tx *gorm.DB, c *model.Category) error
	DeleteTx(tx *gorm.DB, id uuid.UUID) error
}

type categoryRepo struct{ db *gorm.DB }

func NewCategoryRepository(db *gorm.DB) CategoryRepository { return &categoryRepo{db: db} }

func (r *categoryRepo) DB() *gorm.DB { return r.db }

func (r *categoryRepo) Create(ctx context.Context, c *model.Category) error {
	return r.db.WithContext(ctx).Create(c).Error
}

func (r *categoryRepo) FindByID(ctx context.Context, id uuid.UUID) (*model.Category, error) {
	var c model.Category
	err := r.db.WithContext(ctx).First(&c, id).Error
	return &c, err
}

func (r *categoryRepo) FindByName(ctx context.Context, name string) (*model.Category, error) {
	var c model.Category
	err := r.db.WithContext(ctx).Where("name = ?", name).First(&c).Error
	return &c, err
}

func (r *categoryRepo) List(ctx context.Context) ([]model.Category, error) {
	var list []model.Category
	err := r.db.WithContext(ctx).Order("name ASC").Find(&list).Error
	return list, err
}

func (r *categoryRepo) Update(ctx context.Context, c *model.Category) error {
	return r.db.WithContext(ctx).Save(c).Error
}

// FindByIDTx row-locks the category so the archive snapshot cannot race a
// concurrent update.
func (r *categoryRepo) FindByIDTx(tx *gorm.DB, id uuid.UUID) (*model.Category, error) {
	var c model.Category
	err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).First(&c, id).Error
	return &c, err
}

func (r *categoryRepo) FindByNameTx(tx *gorm.DB, name string) (*model.Category, error) {
	var c model.Category
	err := tx.Where("name = ?", name).First(&c).Error
	return &c, err
}

func (r *categoryRepo) CreateTx(tx *gorm.DB, c *model.Category) error {
	return tx.Create(c).Error
}

func (r *categoryRepo) DeleteTx(tx *gorm.DB, id uuid.UUID) error {
	return tx.Delete(&model.Category{}, id).Error
}
