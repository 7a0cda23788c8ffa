package review

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	validatorv10 "github.com/go-playground/validator/v10"
	"github.com/google/uuid"

	"github.com/Pesokrava/ecommerce_catalog/internal/authz"
	"github.com/Pesokrava/ecommerce_catalog/internal/domain"
	"github.com/Pesokrava/ecommerce_catalog/internal/pkg/logger"
	"github.com/Pesokrava/ecommerce_catalog/internal/pkg/validator"
)

// EventPublisher defines the interface for publishing events
type EventPublisher interface {
	Publish(ctx context.Context, subject string, data []byte) error
}

// ReviewEvent is the payload published on review create/delete. The rating
// is already recomputed by the time the event fires; consumers use it for
// notification and reconciliation, not correctness.
type ReviewEvent struct {
	EventType string         `json:"event_type"`
	Timestamp time.Time      `json:"timestamp"`
	ProductID uuid.UUID      `json:"product_id"`
	Review    *domain.Review `json:"review"`
}

// Service handles review business logic: authorization gates, validation,
// the transactional write+recompute, and event publishing.
type Service struct {
	repo      domain.ReviewRepository
	publisher EventPublisher
	validate  *validatorv10.Validate
	logger    *logger.Logger
}

// NewService creates a new review service
func NewService(repo domain.ReviewRepository, publisher EventPublisher, log *logger.Logger) *Service {
	return &Service{
		repo:      repo,
		publisher: publisher,
		validate:  validator.Get(),
		logger:    log,
	}
}

// Create creates a review on behalf of the authenticated user. Only buyers
// may create reviews; the product must be visible. The product rating is
// recomputed inside the same transaction as the insert.
func (s *Service) Create(ctx context.Context, user *domain.User, review *domain.Review) error {
	if err := authz.AuthorizeReviewCreate(user); err != nil {
		s.logger.WithFields(map[string]interface{}{
			"user_id": userID(user),
		}).Warn("Review creation denied: not a buyer")
		return err
	}

	review.UserID = user.ID

	if err := s.validate.Struct(review); err != nil {
		s.logger.Error("Review validation failed", err)
		return domain.ErrInvalidInput
	}

	if err := s.repo.Create(ctx, review); err != nil {
		if !errors.Is(err, domain.ErrInvalidReference) && !errors.Is(err, domain.ErrConstraintViolation) {
			s.logger.Error("Failed to create review", err)
		}
		return err
	}

	s.publishEvent(ctx, "review.created", review)

	s.logger.WithFields(map[string]interface{}{
		"review_id":  review.ID,
		"product_id": review.ProductID,
		"grade":      review.Grade,
	}).Info("Review created")

	return nil
}

// GetByID retrieves an active review by ID
func (s *Service) GetByID(ctx context.Context, id uuid.UUID) (*domain.Review, error) {
	review, err := s.repo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			s.logger.Debugf("Review not found: %s", id)
		} else {
			s.logger.Error("Failed to get review", err)
		}
		return nil, err
	}

	return review, nil
}

// List retrieves all active reviews
func (s *Service) List(ctx context.Context) ([]*domain.Review, error) {
	reviews, err := s.repo.List(ctx)
	if err != nil {
		s.logger.Error("Failed to list reviews", err)
		return nil, err
	}

	return reviews, nil
}

// ListByProduct retrieves active reviews for a visible product
func (s *Service) ListByProduct(ctx context.Context, productID uuid.UUID) ([]*domain.Review, error) {
	reviews, err := s.repo.ListByProduct(ctx, productID)
	if err != nil {
		if !errors.Is(err, domain.ErrNotFound) {
			s.logger.Error("Failed to list reviews by product", err)
		}
		return nil, err
	}

	return reviews, nil
}

// Delete soft-deletes a review on behalf of an admin and returns the
// now-inactive entity. The product rating is recomputed in the same
// transaction as the deactivation.
func (s *Service) Delete(ctx context.Context, user *domain.User, id uuid.UUID) (*domain.Review, error) {
	if err := authz.AuthorizeReviewDelete(user); err != nil {
		s.logger.WithFields(map[string]interface{}{
			"user_id":   userID(user),
			"review_id": id,
		}).Warn("Review deletion denied: admin role required")
		return nil, err
	}

	review, err := s.repo.Deactivate(ctx, id)
	if err != nil {
		if !errors.Is(err, domain.ErrNotFound) {
			s.logger.Error("Failed to delete review", err)
		}
		return nil, err
	}

	s.publishEvent(ctx, "review.deleted", review)

	s.logger.WithFields(map[string]interface{}{
		"review_id":  id,
		"product_id": review.ProductID,
	}).Info("Review deleted")

	return review, nil
}

// publishEvent publishes a review event (non-blocking)
func (s *Service) publishEvent(ctx context.Context, eventType string, review *domain.Review) {
	event := ReviewEvent{
		EventType: eventType,
		Timestamp: time.Now(),
		ProductID: review.ProductID,
		Review:    review,
	}

	data, err := json.Marshal(event)
	if err != nil {
		s.logger.Errorf(err, "Failed to marshal event for review %s", review.ID)
		return
	}

	// Publish in background to avoid blocking the request
	go func() {
		if err := s.publisher.Publish(context.Background(), "reviews.events", data); err != nil {
			s.logger.Errorf(err, "Failed to publish event for review %s", review.ID)
		}
	}()
}

func userID(user *domain.User) string {
	if user == nil {
		return ""
	}
	return user.ID.String()
}
