package usecase

import (
	"context"
	"errors"
	"fmt"

	"movies-service/internal/broadcast"
	"movies-service/internal/data/entity"
	"movies-service/internal/data/repository"
	"movies-service/internal/dto/request"
	"movies-service/internal/dto/response"

	"go.uber.org/zap"
)

type ReviewService interface {
	// GetReviews lists every review, or only those of *movieInfoID.
	GetReviews(ctx context.Context, movieInfoID *string) ([]response.ReviewResponse, error)
	// GetReviewByID returns nil, nil when the id is absent.
	GetReviewByID(ctx context.Context, id string) (*response.ReviewResponse, error)
	// CreateReview persists the review and publishes it to live streams.
	CreateReview(ctx context.Context, req *request.ReviewRequest) (*response.ReviewResponse, error)
	// UpdateReview changes only comment and rating.
	UpdateReview(ctx context.Context, id string, req *request.ReviewUpdateRequest) (*response.ReviewResponse, error)
	DeleteReview(ctx context.Context, id string) error
	StreamReviews(ctx context.Context) <-chan response.ReviewResponse
}

type reviewService struct {
	repo *repository.Repository
	sink *broadcast.Sink[response.ReviewResponse]
	log  *zap.Logger
}

func NewReviewService(
	repo *repository.Repository,
	sink *broadcast.Sink[response.ReviewResponse],
	log *zap.Logger,
) ReviewService {
	return &reviewService{
		repo: repo,
		sink: sink,
		log:  log.With(zap.String("service", "review")),
	}
}

func (s *reviewService) GetReviews(ctx context.Context, movieInfoID *string) ([]response.ReviewResponse, error) {
	var (
		reviews []*entity.Review
		err     error
	)

	if movieInfoID != nil {
		reviews, err = s.repo.Review.FindByMovieInfoID(ctx, *movieInfoID)
	} else {
		reviews, err = s.repo.Review.FindAll(ctx)
	}
	if err != nil {
		s.log.Error("Failed to get reviews", zap.Error(err), zap.Stringp("movie_info_id", movieInfoID))
		return nil, fmt.Errorf("get reviews: %w", err)
	}

	s.log.Info("Reviews retrieved",
		zap.Int("count", len(reviews)),
		zap.Stringp("movie_info_id", movieInfoID),
	)

	return response.ReviewsToResponse(reviews), nil
}

func (s *reviewService) GetReviewByID(ctx context.Context, id string) (*response.ReviewResponse, error) {
	review, err := s.repo.Review.FindByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("get review by id: %w", err)
	}
	if review == nil {
		return nil, nil
	}

	resp := response.ReviewToResponse(review)
	return &resp, nil
}

func (s *reviewService) CreateReview(ctx context.Context, req *request.ReviewRequest) (*response.ReviewResponse, error) {
	if err := validate(req); err != nil {
		s.log.Warn("Create review validation failed", zap.Error(err))
		return nil, err
	}

	review := &entity.Review{
		MovieInfoID: req.MovieInfoID,
		Comment:     req.Comment,
		Rating:      *req.Rating,
	}

	if err := s.repo.Review.Create(ctx, review); err != nil {
		if errors.Is(err, repository.ErrDuplicateID) {
			return nil, &DuplicateError{Entity: "Review", ID: review.ID}
		}
		return nil, fmt.Errorf("create review: %w", err)
	}

	resp := response.ReviewToResponse(review)
	s.sink.Publish(resp)

	s.log.Info("Review created",
		zap.String("review_id", review.ID),
		zap.String("movie_info_id", review.MovieInfoID),
		zap.Float64("rating", review.Rating),
	)

	return &resp, nil
}

func (s *reviewService) UpdateReview(ctx context.Context, id string, req *request.ReviewUpdateRequest) (*response.ReviewResponse, error) {
	review, err := s.repo.Review.FindByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("find review: %w", err)
	}
	if review == nil {
		return nil, &NotFoundError{Entity: "Review", ID: id}
	}

	if err := validate(req); err != nil {
		s.log.Warn("Update review validation failed",
			zap.Error(err),
			zap.String("review_id", id),
		)
		return nil, err
	}

	review.Comment = req.Comment
	review.Rating = *req.Rating

	if err := s.repo.Review.Update(ctx, review); err != nil {
		if errors.Is(err, repository.ErrRecordNotFound) {
			return nil, &NotFoundError{Entity: "Review", ID: id}
		}
		return nil, fmt.Errorf("update review: %w", err)
	}

	s.log.Info("Review updated",
		zap.String("review_id", id),
		zap.Float64("rating", review.Rating),
	)

	resp := response.ReviewToResponse(review)
	return &resp, nil
}

func (s *reviewService) DeleteReview(ctx context.Context, id string) error {
	if err := s.repo.Review.DeleteByID(ctx, id); err != nil {
		return fmt.Errorf("delete review: %w", err)
	}

	s.log.Info("Review deleted", zap.String("review_id", id))
	return nil
}

func (s *reviewService) StreamReviews(ctx context.Context) <-chan response.ReviewResponse {
	return s.sink.Subscribe(ctx)
}
