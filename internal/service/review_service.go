package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/crewdesk/crewdesk/internal/domain"
)

// ReviewService handles performance reviews
type ReviewService struct {
	reviewRepo domain.ReviewRepository
	userRepo   domain.UserRepository
	notifier   domain.Notifier
}

// NewReviewService creates a new review service
func NewReviewService(reviewRepo domain.ReviewRepository, userRepo domain.UserRepository, notifier domain.Notifier) *ReviewService {
	return &ReviewService{
		reviewRepo: reviewRepo,
		userRepo:   userRepo,
		notifier:   notifier,
	}
}

// ReviewRequest contains the creation params
type ReviewRequest struct {
	EmployeeID   string `json:"employee_id"`
	Period       string `json:"period"`
	Rating       int    `json:"rating"`
	Strengths    string `json:"strengths"`
	Improvements string `json:"improvements"`
}

// Create writes a review authored by the calling manager or admin.
func (s *ReviewService) Create(ctx context.Context, p domain.Principal, req ReviewRequest) (*domain.Review, error) {
	if req.Rating < 1 || req.Rating > 5 {
		return nil, domain.Validationf("rating must be between 1 and 5")
	}
	if req.Period == "" {
		return nil, domain.Validationf("period is required")
	}

	if _, err := s.userRepo.GetByID(ctx, req.EmployeeID); err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, fmt.Errorf("employee %s: %w", req.EmployeeID, domain.ErrNotFound)
		}
		return nil, err
	}

	review := &domain.Review{
		EmployeeID:   req.EmployeeID,
		ReviewerID:   p.UserID,
		Period:       req.Period,
		Rating:       req.Rating,
		Strengths:    req.Strengths,
		Improvements: req.Improvements,
		Status:       domain.ReviewSubmitted,
	}
	if err := s.reviewRepo.Create(ctx, review); err != nil {
		return nil, err
	}

	if s.notifier != nil {
		s.notifier.NotifyUser(review.EmployeeID, "review_submitted", review)
	}

	return review, nil
}

// Acknowledge lets the reviewed employee confirm they have read the review.
func (s *ReviewService) Acknowledge(ctx context.Context, p domain.Principal, id string) (*domain.Review, error) {
	review, err := s.reviewRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	// Only the subject of the review may acknowledge it. Not even an admin:
	// acknowledging on someone's behalf would defeat the point.
	if review.EmployeeID != p.UserID {
		return nil, domain.ErrForbidden
	}
	if review.Status == domain.ReviewAcknowledged {
		return review, nil
	}

	now := time.Now()
	if err := s.reviewRepo.Acknowledge(ctx, id, now); err != nil {
		return nil, err
	}
	review.Status = domain.ReviewAcknowledged
	review.AckedAt = &now
	return review, nil
}

// ForEmployee returns one employee's reviews.
func (s *ReviewService) ForEmployee(ctx context.Context, employeeID string) ([]*domain.Review, error) {
	return s.reviewRepo.ListByEmployee(ctx, employeeID)
}

// All returns every review (admin/manager view), optionally filtered.
func (s *ReviewService) All(ctx context.Context, employeeID string) ([]*domain.Review, error) {
	if employeeID != "" {
		return s.reviewRepo.ListByEmployee(ctx, employeeID)
	}
	return s.reviewRepo.ListAll(ctx)
}
