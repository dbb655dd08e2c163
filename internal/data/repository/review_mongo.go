package repository

import (
	"context"
	"errors"
	"fmt"

	"movies-service/internal/data/entity"

	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/v2/bson"
	"go.mongodb.org/mongo-driver/v2/mongo"
	"go.uber.org/zap"
)

const reviewCollection = "review"

type reviewMongoRepository struct {
	coll *mongo.Collection
	log  *zap.Logger
}

func NewReviewMongoRepository(db *mongo.Database, log *zap.Logger) ReviewRepository {
	return &reviewMongoRepository{
		coll: db.Collection(reviewCollection),
		log:  log.With(zap.String("repository", "review"), zap.String("driver", "mongo")),
	}
}

func (r *reviewMongoRepository) FindAll(ctx context.Context) ([]*entity.Review, error) {
	return r.find(ctx, bson.D{})
}

func (r *reviewMongoRepository) FindByMovieInfoID(ctx context.Context, movieInfoID string) ([]*entity.Review, error) {
	return r.find(ctx, movieInfoIDFilter(movieInfoID))
}

func (r *reviewMongoRepository) FindByID(ctx context.Context, id string) (*entity.Review, error) {
	var review entity.Review
	err := r.coll.FindOne(ctx, idFilter(id)).Decode(&review)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, nil
	}
	if err != nil {
		r.log.Error("Failed to find review by ID",
			zap.Error(err),
			zap.String("review_id", id),
		)
		return nil, fmt.Errorf("find review %s: %w", id, err)
	}

	return &review, nil
}

func (r *reviewMongoRepository) Create(ctx context.Context, review *entity.Review) error {
	if review.ID == "" {
		review.ID = uuid.NewString()
	}

	_, err := r.coll.InsertOne(ctx, review)
	if isDuplicateKey(err) {
		r.log.Warn("Review id already exists", zap.String("review_id", review.ID))
		return fmt.Errorf("create review %s: %w", review.ID, ErrDuplicateID)
	}
	if err != nil {
		r.log.Error("Failed to create review",
			zap.Error(err),
			zap.String("movie_info_id", review.MovieInfoID),
		)
		return fmt.Errorf("create review for movie info %s: %w", review.MovieInfoID, err)
	}

	return nil
}

func (r *reviewMongoRepository) Update(ctx context.Context, review *entity.Review) error {
	result, err := r.coll.UpdateByID(ctx, review.ID, reviewUpdate(review))
	if err != nil {
		r.log.Error("Failed to update review",
			zap.Error(err),
			zap.String("review_id", review.ID),
		)
		return fmt.Errorf("update review %s: %w", review.ID, err)
	}

	if result.MatchedCount == 0 {
		return fmt.Errorf("update review %s: %w", review.ID, ErrRecordNotFound)
	}

	return nil
}

func (r *reviewMongoRepository) DeleteByID(ctx context.Context, id string) error {
	if _, err := r.coll.DeleteOne(ctx, idFilter(id)); err != nil {
		r.log.Error("Failed to delete review",
			zap.Error(err),
			zap.String("review_id", id),
		)
		return fmt.Errorf("delete review %s: %w", id, err)
	}
	return nil
}

func (r *reviewMongoRepository) DeleteAll(ctx context.Context) error {
	if _, err := r.coll.DeleteMany(ctx, bson.D{}); err != nil {
		r.log.Error("Failed to delete all reviews", zap.Error(err))
		return fmt.Errorf("delete reviews: %w", err)
	}
	return nil
}

func (r *reviewMongoRepository) find(ctx context.Context, filter bson.D) ([]*entity.Review, error) {
	cursor, err := r.coll.Find(ctx, filter)
	if err != nil {
		r.log.Error("Failed to find reviews", zap.Error(err))
		return nil, fmt.Errorf("find reviews: %w", err)
	}

	var reviews []*entity.Review
	if err := cursor.All(ctx, &reviews); err != nil {
		r.log.Error("Failed to decode reviews", zap.Error(err))
		return nil, fmt.Errorf("decode reviews: %w", err)
	}

	return reviews, nil
}

func movieInfoIDFilter(movieInfoID string) bson.D {
	return bson.D{{Key: "movie_info_id", Value: movieInfoID}}
}

// reviewUpdate touches comment and rating only; the parent id never changes.
func reviewUpdate(review *entity.Review) bson.D {
	return bson.D{{Key: "$set", Value: bson.D{
		{Key: "comment", Value: review.Comment},
		{Key: "rating", Value: review.Rating},
	}}}
}
