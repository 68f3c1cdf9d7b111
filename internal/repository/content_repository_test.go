package repository

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"github.com/d60-Lab/content-gallery/internal/model"
)

func setupTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(&model.Content{}))
	return db
}

func newContent(status, category string, createdAt time.Time) *model.Content {
	return &model.Content{
		ID:          uuid.New().String(),
		Title:       "T",
		Description: "D",
		Category:    category,
		ImageURL:    "http://x/y.png",
		AuthorName:  "A",
		AuthorEmail: "a@b.com",
		Status:      status,
		CreatedAt:   createdAt,
		UpdatedAt:   createdAt,
	}
}

func TestCreateAndGetByID(t *testing.T) {
	repo := NewContentRepository(setupTestDB(t))
	ctx := context.Background()

	c := newContent(model.StatusPending, model.CategoryGraphics, time.Now())
	require.NoError(t, repo.Create(ctx, c))

	got, err := repo.GetByID(ctx, c.ID)
	require.NoError(t, err)
	require.Equal(t, c.ID, got.ID)
	require.Equal(t, model.StatusPending, got.Status)

	_, err = repo.GetByID(ctx, "missing")
	require.ErrorIs(t, err, ErrNotFound)
}

func TestListByStatusOrderAndWindow(t *testing.T) {
	repo := NewContentRepository(setupTestDB(t))
	ctx := context.Background()

	base := time.Now().Add(-time.Hour)
	for i := 0; i < 5; i++ {
		c := newContent(model.StatusApproved, model.CategoryGraphics, base.Add(time.Duration(i)*time.Minute))
		c.Title = fmt.Sprintf("t%d", i)
		require.NoError(t, repo.Create(ctx, c))
	}
	// one record that must never leak into the approved set
	require.NoError(t, repo.Create(ctx, newContent(model.StatusPending, model.CategoryGraphics, base)))

	items, err := repo.ListByStatus(ctx, model.StatusApproved, "", 0, 10)
	require.NoError(t, err)
	require.Len(t, items, 5)
	for i := 0; i < len(items)-1; i++ {
		require.False(t, items[i].CreatedAt.Before(items[i+1].CreatedAt), "not sorted newest first")
	}
	require.Equal(t, "t4", items[0].Title)

	window, err := repo.ListByStatus(ctx, model.StatusApproved, "", 2, 2)
	require.NoError(t, err)
	require.Len(t, window, 2)
	require.Equal(t, items[2].ID, window[0].ID)

	cnt, err := repo.CountByStatus(ctx, model.StatusApproved, "")
	require.NoError(t, err)
	require.EqualValues(t, 5, cnt)
}

func TestListByStatusCategoryFilter(t *testing.T) {
	repo := NewContentRepository(setupTestDB(t))
	ctx := context.Background()

	now := time.Now()
	require.NoError(t, repo.Create(ctx, newContent(model.StatusApproved, model.CategoryGraphics, now)))
	require.NoError(t, repo.Create(ctx, newContent(model.StatusApproved, model.CategoryVideos, now.Add(time.Second))))

	items, err := repo.ListByStatus(ctx, model.StatusApproved, model.CategoryVideos, 0, 10)
	require.NoError(t, err)
	require.Len(t, items, 1)
	require.Equal(t, model.CategoryVideos, items[0].Category)

	cnt, err := repo.CountByStatus(ctx, model.StatusApproved, model.CategoryVideos)
	require.NoError(t, err)
	require.EqualValues(t, 1, cnt)
}

func TestUpdateDecision(t *testing.T) {
	repo := NewContentRepository(setupTestDB(t))
	ctx := context.Background()

	c := newContent(model.StatusPending, model.CategoryThreads, time.Now().Add(-time.Minute))
	require.NoError(t, repo.Create(ctx, c))

	at := time.Now()
	require.NoError(t, repo.UpdateDecision(ctx, c.ID, model.StatusApproved, "looks good", at))

	got, err := repo.GetByID(ctx, c.ID)
	require.NoError(t, err)
	require.Equal(t, model.StatusApproved, got.Status)
	require.Equal(t, "looks good", got.AdminNotes)
	require.True(t, got.UpdatedAt.After(got.CreatedAt))

	// empty notes leave the previous notes untouched
	require.NoError(t, repo.UpdateDecision(ctx, c.ID, model.StatusRejected, "", time.Now()))
	got, err = repo.GetByID(ctx, c.ID)
	require.NoError(t, err)
	require.Equal(t, model.StatusRejected, got.Status)
	require.Equal(t, "looks good", got.AdminNotes)

	require.ErrorIs(t, repo.UpdateDecision(ctx, "missing", model.StatusApproved, "", time.Now()), ErrNotFound)
}

func TestDelete(t *testing.T) {
	repo := NewContentRepository(setupTestDB(t))
	ctx := context.Background()

	c := newContent(model.StatusApproved, model.CategoryGraphics, time.Now())
	require.NoError(t, repo.Create(ctx, c))

	require.NoError(t, repo.Delete(ctx, c.ID))
	_, err := repo.GetByID(ctx, c.ID)
	require.ErrorIs(t, err, ErrNotFound)

	require.ErrorIs(t, repo.Delete(ctx, c.ID), ErrNotFound)
}
