package repository

import (
	"context"
	"errors"

	"movies-service/internal/data/entity"
	"movies-service/pkg/database"

	"github.com/jackc/pgx/v5/pgconn"
	"go.mongodb.org/mongo-driver/v2/mongo"
	"go.uber.org/zap"
)

var (
	// ErrRecordNotFound is returned by Update when the target id does not exist.
	ErrRecordNotFound = errors.New("record not found")
	// ErrDuplicateID is returned by Create when the id is already taken.
	ErrDuplicateID = errors.New("duplicate id")
)

// pgUniqueViolation is the SQLSTATE for unique_violation.
const pgUniqueViolation = "23505"

func isDuplicateKey(err error) bool {
	if mongo.IsDuplicateKeyError(err) {
		return true
	}

	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == pgUniqueViolation
}

type MovieInfoRepository interface {
	FindAll(ctx context.Context) ([]*entity.MovieInfo, error)
	FindByYear(ctx context.Context, year int) ([]*entity.MovieInfo, error)
	// FindByID returns nil, nil when the id is absent.
	FindByID(ctx context.Context, id string) (*entity.MovieInfo, error)
	// Create assigns an id when movie.ID is empty and returns
	// ErrDuplicateID when the id is taken.
	Create(ctx context.Context, movie *entity.MovieInfo) error
	Update(ctx context.Context, movie *entity.MovieInfo) error
	// DeleteByID succeeds whether or not the id exists.
	DeleteByID(ctx context.Context, id string) error
	DeleteAll(ctx context.Context) error
}

type ReviewRepository interface {
	FindAll(ctx context.Context) ([]*entity.Review, error)
	FindByMovieInfoID(ctx context.Context, movieInfoID string) ([]*entity.Review, error)
	FindByID(ctx context.Context, id string) (*entity.Review, error)
	Create(ctx context.Context, review *entity.Review) error
	Update(ctx context.Context, review *entity.Review) error
	DeleteByID(ctx context.Context, id string) error
	DeleteAll(ctx context.Context) error
}

type Repository struct {
	MovieInfo MovieInfoRepository
	Review    ReviewRepository
}

func NewPostgresRepository(db database.PgxIface, log *zap.Logger) *Repository {
	return &Repository{
		MovieInfo: NewMovieInfoRepository(db, log),
		Review:    NewReviewRepository(db, log),
	}
}

func NewMongoRepository(db *mongo.Database, log *zap.Logger) *Repository {
	return &Repository{
		MovieInfo: NewMovieInfoMongoRepository(db, log),
		Review:    NewReviewMongoRepository(db, log),
	}
}

func NewMemoryRepository(log *zap.Logger) *Repository {
	return &Repository{
		MovieInfo: NewMovieInfoMemoryRepository(log),
		Review:    NewReviewMemoryRepository(log),
	}
}
