package repository

import (
	"context"
	"errors"
	"time"

	"gorm.io/gorm"

	"github.com/d60-Lab/content-gallery/internal/model"
)

// ErrNotFound is returned when an id-scoped operation matched no row.
var ErrNotFound = errors.New("content not found")

type ContentRepository interface {
	// Create persists a new record as a single atomic insert.
	Create(ctx context.Context, c *model.Content) error

	// GetByID fetches one record; ErrNotFound when absent.
	GetByID(ctx context.Context, id string) (*model.Content, error)

	// ListByStatus returns the [offset, offset+limit) window of records in
	// the given status, newest first. Category narrows the filter when
	// non-empty.
	ListByStatus(ctx context.Context, status, category string, offset, limit int) ([]*model.Content, error)

	// CountByStatus reports the exact number of records matching the same
	// filter ListByStatus uses.
	CountByStatus(ctx context.Context, status, category string) (int64, error)

	// UpdateDecision writes a moderation outcome scoped by id. The write is
	// a plain rewrite, so a concurrent duplicate decision lands on the same
	// terminal status instead of failing. ErrNotFound when the id is absent.
	UpdateDecision(ctx context.Context, id, status, notes string, at time.Time) error

	// Delete removes a record outright; ErrNotFound when absent.
	Delete(ctx context.Context, id string) error
}

type contentRepository struct{ db *gorm.DB }

func NewContentRepository(db *gorm.DB) ContentRepository { return &contentRepository{db: db} }

func (r *contentRepository) Create(ctx context.Context, c *model.Content) error {
	return r.db.WithContext(ctx).Create(c).Error
}

func (r *contentRepository) GetByID(ctx context.Context, id string) (*model.Content, error) {
	var c model.Content
	err := r.db.WithContext(ctx).Where("id = ?", id).First(&c).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &c, nil
}

func (r *contentRepository) ListByStatus(ctx context.Context, status, category string, offset, limit int) ([]*model.Content, error) {
	res := make([]*model.Content, 0, limit)
	q := r.db.WithContext(ctx).Where("status = ?", status)
	if category != "" {
		q = q.Where("category = ?", category)
	}
	// id DESC keeps the order stable across rows created in the same tick
	err := q.Order("created_at DESC, id DESC").Offset(offset).Limit(limit).Find(&res).Error
	return res, err
}

func (r *contentRepository) CountByStatus(ctx context.Context, status, category string) (int64, error) {
	var cnt int64
	q := r.db.WithContext(ctx).Model(&model.Content{}).Where("status = ?", status)
	if category != "" {
		q = q.Where("category = ?", category)
	}
	err := q.Count(&cnt).Error
	return cnt, err
}

func (r *contentRepository) UpdateDecision(ctx context.Context, id, status, notes string, at time.Time) error {
	updates := map[string]any{"status": status, "updated_at": at}
	if notes != "" {
		updates["admin_notes"] = notes
	}
	res := r.db.WithContext(ctx).Model(&model.Content{}).Where("id = ?", id).Updates(updates)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *contentRepository) Delete(ctx context.Context, id string) error {
	res := r.db.WithContext(ctx).Where("id = ?", id).Delete(&model.Content{})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}
