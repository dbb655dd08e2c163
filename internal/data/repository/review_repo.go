package repository

import (
	"context"
	"errors"
	"fmt"

	"movies-service/internal/data/entity"
	"movies-service/pkg/database"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"go.uber.org/zap"
)

const reviewColumns = `id, movie_info_id, comment, rating`

type reviewRepository struct {
	db  database.PgxIface
	log *zap.Logger
}

func NewReviewRepository(db database.PgxIface, log *zap.Logger) ReviewRepository {
	return &reviewRepository{
		db:  db,
		log: log.With(zap.String("repository", "review"), zap.String("driver", "postgres")),
	}
}

func (r *reviewRepository) FindAll(ctx context.Context) ([]*entity.Review, error) {
	rows, err := r.db.Query(ctx, `SELECT `+reviewColumns+` FROM reviews`)
	if err != nil {
		r.log.Error("Failed to find all reviews", zap.Error(err))
		return nil, fmt.Errorf("find reviews: %w", err)
	}

	return r.scanAll(rows)
}

func (r *reviewRepository) FindByMovieInfoID(ctx context.Context, movieInfoID string) ([]*entity.Review, error) {
	query := `SELECT ` + reviewColumns + ` FROM reviews WHERE movie_info_id = $1`

	rows, err := r.db.Query(ctx, query, movieInfoID)
	if err != nil {
		r.log.Error("Failed to find reviews by movie info ID",
			zap.Error(err),
			zap.String("movie_info_id", movieInfoID),
		)
		return nil, fmt.Errorf("find reviews by movie info %s: %w", movieInfoID, err)
	}

	return r.scanAll(rows)
}

func (r *reviewRepository) FindByID(ctx context.Context, id string) (*entity.Review, error) {
	query := `SELECT ` + reviewColumns + ` FROM reviews WHERE id = $1`

	var review entity.Review
	err := r.db.QueryRow(ctx, query, id).Scan(
		&review.ID,
		&review.MovieInfoID,
		&review.Comment,
		&review.Rating,
	)

	if errors.Is(err, pgx.ErrNoRows) {
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

func (r *reviewRepository) Create(ctx context.Context, review *entity.Review) error {
	if review.ID == "" {
		review.ID = uuid.NewString()
	}

	query := `
		INSERT INTO reviews (` + reviewColumns + `)
		VALUES ($1, $2, $3, $4)
	`

	_, err := r.db.Exec(ctx, query,
		review.ID,
		review.MovieInfoID,
		review.Comment,
		review.Rating,
	)
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

func (r *reviewRepository) Update(ctx context.Context, review *entity.Review) error {
	query := `
		UPDATE reviews
		SET comment = $2, rating = $3
		WHERE id = $1
	`

	result, err := r.db.Exec(ctx, query,
		review.ID,
		review.Comment,
		review.Rating,
	)
	if err != nil {
		r.log.Error("Failed to update review",
			zap.Error(err),
			zap.String("review_id", review.ID),
		)
		return fmt.Errorf("update review %s: %w", review.ID, err)
	}

	if result.RowsAffected() == 0 {
		return fmt.Errorf("update review %s: %w", review.ID, ErrRecordNotFound)
	}

	return nil
}

func (r *reviewRepository) DeleteByID(ctx context.Context, id string) error {
	if _, err := r.db.Exec(ctx, `DELETE FROM reviews WHERE id = $1`, id); err != nil {
		r.log.Error("Failed to delete review",
			zap.Error(err),
			zap.String("review_id", id),
		)
		return fmt.Errorf("delete review %s: %w", id, err)
	}
	return nil
}

func (r *reviewRepository) DeleteAll(ctx context.Context) error {
	if _, err := r.db.Exec(ctx, `DELETE FROM reviews`); err != nil {
		r.log.Error("Failed to delete all reviews", zap.Error(err))
		return fmt.Errorf("delete reviews: %w", err)
	}
	return nil
}

func (r *reviewRepository) scanAll(rows pgx.Rows) ([]*entity.Review, error) {
	defer rows.Close()

	var reviews []*entity.Review
	for rows.Next() {
		var review entity.Review
		err := rows.Scan(
			&review.ID,
			&review.MovieInfoID,
			&review.Comment,
			&review.Rating,
		)
		if err != nil {
			r.log.Error("Failed to scan review row", zap.Error(err))
			return nil, fmt.Errorf("scan review row: %w", err)
		}
		reviews = append(reviews, &review)
	}

	if err := rows.Err(); err != nil {
		r.log.Error("Rows iteration error", zap.Error(err))
		return nil, fmt.Errorf("iterate reviews: %w", err)
	}

	return reviews, nil
}
