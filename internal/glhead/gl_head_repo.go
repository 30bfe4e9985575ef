package glhead

import (
	"context"

	"gorm.io/gorm"
)

type Repository interface {
	Create(ctx context.Context, head *GLHead) error
	FindAll(ctx context.Context) ([]GLHead, error)
	FindByID(ctx context.Context, id string) (*GLHead, error)
	FindByType(ctx context.Context, headType string) ([]GLHead, error)
	Update(ctx context.Context, head *GLHead) error
	Delete(ctx context.Context, id string) error
	CountChildren(ctx context.Context, id string) (int64, error)
}

type repository struct {
	db *gorm.DB
}

func NewRepository(db *gorm.DB) Repository {
	return &repository{db: db}
}

func (r *repository) Create(ctx context.Context, head *GLHead) error {
	return r.db.WithContext(ctx).Create(head).Error
}

func (r *repository) FindAll(ctx context.Context) ([]GLHead, error) {
	var heads []GLHead
	err := r.db.WithContext(ctx).
		Order("type ASC, name ASC").
		Find(&heads).Error
	return heads, err
}

func (r *repository) FindByID(ctx context.Context, id string) (*GLHead, error) {
	var head GLHead
	err := r.db.WithContext(ctx).
		First(&head, "id = ?", id).Error
	return &head, err
}

func (r *repository) FindByType(ctx context.Context, headType string) ([]GLHead, error) {
	var heads []GLHead
	err := r.db.WithContext(ctx).
		Where("type = ?", headType).
		Order("name ASC").
		Find(&heads).Error
	return heads, err
}

func (r *repository) Update(ctx context.Context, head *GLHead) error {
	return r.db.WithContext(ctx).Save(head).Error
}

func (r *repository) Delete(ctx context.Context, id string) error {
	return r.db.WithContext(ctx).
		Delete(&GLHead{}, "id = ?", id).Error
}

func (r *repository) CountChildren(ctx context.Context, id string) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&GLHead{}).
		Where("parent_id = ?", id).
		Count(&count).Error
	return count, err
}
