package service

import (
	"context"
	"errors"

	"reviewhub/internal/api/dto"
	"reviewhub/internal/api/models"
	"reviewhub/internal/api/permission"
	"reviewhub/internal/api/repository"

	"gorm.io/gorm"
)

type ReviewService interface {
	List(ctx context.Context, titleID int64, page, pageSize int) (*dto.PaginatedResponse[dto.ReviewResponse], error)
	Get(ctx context.Context, titleID, reviewID int64) (*dto.ReviewResponse, error)
	Create(ctx context.Context, actor permission.Actor, titleID int64, in dto.CreateReviewDTO) (*dto.ReviewResponse, error)
	Update(ctx context.Context, actor permission.Actor, titleID, reviewID int64, in dto.UpdateReviewDTO) (*dto.ReviewResponse, error)
	Delete(ctx context.Context, actor permission.Actor, titleID, reviewID int64) error
}

type reviewService struct {
	reviewRepo repository.ReviewRepository
	titleRepo  repository.TitleRepository
}

func NewReviewService(reviewRepo repository.ReviewRepository, titleRepo repository.TitleRepository) ReviewService {
	return &reviewService{
		reviewRepo: reviewRepo,
		titleRepo:  titleRepo,
	}
}

func (s *reviewService) List(ctx context.Context, titleID int64, page, pageSize int) (*dto.PaginatedResponse[dto.ReviewResponse], error) {
	if err := s.checkTitle(ctx, titleID); err != nil {
		return nil, err
	}

	reviews, total, err := s.reviewRepo.GetByTitle(titleID, page, pageSize)
	if err != nil {
		return nil, err
	}

	resp := make([]dto.ReviewResponse, 0, len(reviews))
	for i := range reviews {
		resp = append(resp, dto.ReviewFromModel(&reviews[i]))
	}
	return dto.NewPaginatedResponse(resp, int(total), page, pageSize), nil
}

func (s *reviewService) Get(ctx context.Context, titleID, reviewID int64) (*dto.ReviewResponse, error) {
	if err := s.checkTitle(ctx, titleID); err != nil {
		return nil, err
	}
	review, err := s.findReview(titleID, reviewID)
	if err != nil {
		return nil, err
	}
	resp := dto.ReviewFromModel(review)
	return &resp, nil
}

// Create posts the actor's review for a title. A second review from the
// same author is rejected here, and again by the composite unique index
// if two submissions race past the pre-check.
func (s *reviewService) Create(ctx context.Context, actor permission.Actor, titleID int64, in dto.CreateReviewDTO) (*dto.ReviewResponse, error) {
	// parent resolution runs before any policy decision
	if err := s.checkTitle(ctx, titleID); err != nil {
		return nil, err
	}
	if !permission.CanCreateContent(actor) {
		return nil, ErrForbidden
	}

	_, err := s.reviewRepo.GetByTitleAndAuthor(titleID, actor.ID)
	if err == nil {
		return nil, ErrReviewExists
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}

	review := &models.Review{
		TitleID:  titleID,
		AuthorID: actor.ID,
		Text:     in.Text,
		Score:    in.Score,
	}
	if err := s.reviewRepo.Create(review); err != nil {
		if errors.Is(err, repository.ErrDuplicate) {
			return nil, ErrReviewExists
		}
		return nil, err
	}

	// reload for the author association
	review, err = s.reviewRepo.GetByID(titleID, review.ID)
	if err != nil {
		return nil, err
	}

	resp := dto.ReviewFromModel(review)
	return &resp, nil
}

func (s *reviewService) Update(ctx context.Context, actor permission.Actor, titleID, reviewID int64, in dto.UpdateReviewDTO) (*dto.ReviewResponse, error) {
	if err := s.checkTitle(ctx, titleID); err != nil {
		return nil, err
	}
	review, err := s.findReview(titleID, reviewID)
	if err != nil {
		return nil, err
	}
	if !permission.CanEditContent(actor, review.AuthorID) {
		return nil, ErrForbidden
	}

	in.ApplyTo(review)
	if err := s.reviewRepo.Update(review); err != nil {
		return nil, err
	}

	review, err = s.reviewRepo.GetByID(titleID, reviewID)
	if err != nil {
		return nil, err
	}
	resp := dto.ReviewFromModel(review)
	return &resp, nil
}

// Delete removes a review; its comments cascade away with it.
func (s *reviewService) Delete(ctx context.Context, actor permission.Actor, titleID, reviewID int64) error {
	if err := s.checkTitle(ctx, titleID); err != nil {
		return err
	}
	review, err := s.findReview(titleID, reviewID)
	if err != nil {
		return err
	}
	if !permission.CanEditContent(actor, review.AuthorID) {
		return ErrForbidden
	}
	return s.reviewRepo.Delete(reviewID)
}

func (s *reviewService) checkTitle(ctx context.Context, titleID int64) error {
	if _, err := s.titleRepo.GetByID(ctx, titleID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrTitleNotFound
		}
		return err
	}
	return nil
}

func (s *reviewService) findReview(titleID, reviewID int64) (*models.Review, error) {
	review, err := s.reviewRepo.GetByID(titleID, reviewID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrReviewNotFound
		}
		return nil, err
	}
	return review, nil
}
