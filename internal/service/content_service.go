package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/d60-Lab/content-gallery/internal/model"
	"github.com/d60-Lab/content-gallery/internal/repository"
	"github.com/d60-Lab/content-gallery/pkg/logger"
)

// Moderation actions.
const (
	ActionApprove = "approve"
	ActionReject  = "reject"
)

const (
	defaultLimit = 50
	maxLimit     = 100
)

var validate = validator.New()

// SubmitInput is the intake payload. Every field is required.
type SubmitInput struct {
	Title       string
	Description string
	Category    string
	ImageURL    string
	AuthorName  string
	AuthorEmail string
}

// ListResult is one window of a status-scoped query.
type ListResult struct {
	Items   []*model.Content
	Total   int64
	Limit   int
	Offset  int
	HasMore bool
}

// ContentService owns the submission lifecycle: intake, moderation
// decisions, status-scoped queries and admin deletion.
type ContentService interface {
	Submit(ctx context.Context, in SubmitInput) (*model.Content, error)
	Decide(ctx context.Context, id, action, notes string) (*model.Content, error)
	List(ctx context.Context, status, category string, limit, offset int) (*ListResult, error)
	Delete(ctx context.Context, id string) error
	Stats(ctx context.Context) (map[string]int64, error)
}

type contentService struct {
	repo  repository.ContentRepository
	stats *StatsReplicator // optional; nil disables counters
}

func NewContentService(repo repository.ContentRepository, stats *StatsReplicator) ContentService {
	return &contentService{repo: repo, stats: stats}
}

// Submit validates the payload, naming every missing field at once, and
// persists the record in pending state as a single insert.
func (s *contentService) Submit(ctx context.Context, in SubmitInput) (*model.Content, error) {
	var missing []string
	if in.Title == "" {
		missing = append(missing, "title")
	}
	if in.Description == "" {
		missing = append(missing, "description")
	}
	if in.Category == "" {
		missing = append(missing, "category")
	}
	if in.ImageURL == "" {
		missing = append(missing, "image_url")
	}
	if in.AuthorName == "" {
		missing = append(missing, "author_name")
	}
	if in.AuthorEmail == "" {
		missing = append(missing, "author_email")
	}
	if len(missing) > 0 {
		return nil, newMissingFieldsError(missing)
	}
	if !model.ValidCategory(in.Category) {
		return nil, &ValidationError{Message: fmt.Sprintf("invalid category %q", in.Category)}
	}
	if err := validate.Var(in.AuthorEmail, "email"); err != nil {
		return nil, &ValidationError{Message: "invalid author_email"}
	}

	now := time.Now()
	c := &model.Content{
		ID:          uuid.New().String(),
		Title:       in.Title,
		Description: in.Description,
		Category:    in.Category,
		ImageURL:    in.ImageURL,
		AuthorName:  in.AuthorName,
		AuthorEmail: in.AuthorEmail,
		Status:      model.StatusPending,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	if err := s.repo.Create(ctx, c); err != nil {
		logger.Error("content insert failed", zap.Error(err))
		return nil, ErrStoreUnavailable
	}
	if s.stats != nil {
		s.stats.RecordIntake(c.Category)
	}
	return c, nil
}

// Decide applies a moderation action. Records may be re-reviewed: a
// decision moves the record to the action's status regardless of its
// current one, and repeating a decision is an idempotent rewrite. No
// lock is taken between read and write; concurrent duplicates land on
// the same terminal status.
func (s *contentService) Decide(ctx context.Context, id, action, notes string) (*model.Content, error) {
	var status string
	switch action {
	case ActionApprove:
		status = model.StatusApproved
	case ActionReject:
		status = model.StatusRejected
	default:
		return nil, &ValidationError{Message: `invalid action, must be "approve" or "reject"`}
	}

	prior, err := s.repo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrContentNotFound
		}
		logger.Error("content lookup failed", zap.String("id", id), zap.Error(err))
		return nil, ErrStoreUnavailable
	}

	if err := s.repo.UpdateDecision(ctx, id, status, notes, time.Now()); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrContentNotFound
		}
		logger.Error("content decision failed", zap.String("id", id), zap.Error(err))
		return nil, ErrStoreUnavailable
	}
	if s.stats != nil {
		s.stats.RecordDecision(prior.Status, status, prior.Category)
	}

	updated, err := s.repo.GetByID(ctx, id)
	if err != nil {
		logger.Error("content reload failed", zap.String("id", id), zap.Error(err))
		return nil, ErrStoreUnavailable
	}
	logger.Info("content moderated",
		zap.String("id", id), zap.String("from", prior.Status), zap.String("to", status))
	return updated, nil
}

// List returns one window of records in the given status, newest first.
// HasMore compares returned count to the requested limit; it promises
// only that at least one more page is possible, not an exact remainder.
func (s *contentService) List(ctx context.Context, status, category string, limit, offset int) (*ListResult, error) {
	if !model.ValidStatus(status) {
		return nil, &ValidationError{Message: fmt.Sprintf("invalid status %q", status)}
	}
	if category == "all" {
		category = ""
	}
	if category != "" && !model.ValidCategory(category) {
		return nil, &ValidationError{Message: fmt.Sprintf("invalid category %q", category)}
	}
	if limit <= 0 {
		limit = defaultLimit
	}
	if limit > maxLimit {
		limit = maxLimit
	}
	if offset < 0 {
		offset = 0
	}

	items, err := s.repo.ListByStatus(ctx, status, category, offset, limit)
	if err != nil {
		logger.Error("content query failed", zap.String("status", status), zap.Error(err))
		return nil, ErrStoreUnavailable
	}
	total, err := s.repo.CountByStatus(ctx, status, category)
	if err != nil {
		logger.Error("content count failed", zap.String("status", status), zap.Error(err))
		return nil, ErrStoreUnavailable
	}
	return &ListResult{
		Items:   items,
		Total:   total,
		Limit:   limit,
		Offset:  offset,
		HasMore: len(items) == limit,
	}, nil
}

// Delete removes a record outright. It is decoupled from moderation:
// any status may be deleted, and no lifecycle transition is implied.
func (s *contentService) Delete(ctx context.Context, id string) error {
	prior, err := s.repo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return ErrContentNotFound
		}
		logger.Error("content lookup failed", zap.String("id", id), zap.Error(err))
		return ErrStoreUnavailable
	}
	if err := s.repo.Delete(ctx, id); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return ErrContentNotFound
		}
		logger.Error("content delete failed", zap.String("id", id), zap.Error(err))
		return ErrStoreUnavailable
	}
	if s.stats != nil {
		s.stats.RecordDelete(prior.Status, prior.Category)
	}
	return nil
}

// Stats reads the moderation counters. They are maintained
// asynchronously and may trail the store briefly.
func (s *contentService) Stats(ctx context.Context) (map[string]int64, error) {
	if s.stats == nil {
		// fall back to exact counts straight from the store
		out := make(map[string]int64, 3)
		for _, st := range []string{model.StatusPending, model.StatusApproved, model.StatusRejected} {
			n, err := s.repo.CountByStatus(ctx, st, "")
			if err != nil {
				logger.Error("content count failed", zap.String("status", st), zap.Error(err))
				return nil, ErrStoreUnavailable
			}
			out[st] = n
		}
		return out, nil
	}
	snap, err := s.stats.Snapshot(ctx)
	if err != nil {
		logger.Error("stats snapshot failed", zap.Error(err))
		return nil, ErrStoreUnavailable
	}
	return snap, nil
}
