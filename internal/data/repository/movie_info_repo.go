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

const movieInfoColumns = `id, name, year, cast_members, release_date`

type movieInfoRepository struct {
	db  database.PgxIface
	log *zap.Logger
}

func NewMovieInfoRepository(db database.PgxIface, log *zap.Logger) MovieInfoRepository {
	return &movieInfoRepository{
		db:  db,
		log: log.With(zap.String("repository", "movie_info"), zap.String("driver", "postgres")),
	}
}

func (r *movieInfoRepository) FindAll(ctx context.Context) ([]*entity.MovieInfo, error) {
	query := `SELECT ` + movieInfoColumns + ` FROM movie_infos`

	rows, err := r.db.Query(ctx, query)
	if err != nil {
		r.log.Error("Failed to find all movie infos", zap.Error(err))
		return nil, fmt.Errorf("find movie infos: %w", err)
	}

	return r.scanAll(rows)
}

func (r *movieInfoRepository) FindByYear(ctx context.Context, year int) ([]*entity.MovieInfo, error) {
	query := `SELECT ` + movieInfoColumns + ` FROM movie_infos WHERE year = $1`

	rows, err := r.db.Query(ctx, query, year)
	if err != nil {
		r.log.Error("Failed to find movie infos by year",
			zap.Error(err),
			zap.Int("year", year),
		)
		return nil, fmt.Errorf("find movie infos by year %d: %w", year, err)
	}

	return r.scanAll(rows)
}

func (r *movieInfoRepository) FindByID(ctx context.Context, id string) (*entity.MovieInfo, error) {
	query := `SELECT ` + movieInfoColumns + ` FROM movie_infos WHERE id = $1`

	var movie entity.MovieInfo
	err := r.db.QueryRow(ctx, query, id).Scan(
		&movie.ID,
		&movie.Name,
		&movie.Year,
		&movie.Cast,
		&movie.ReleaseDate,
	)

	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		r.log.Error("Failed to find movie info by ID",
			zap.Error(err),
			zap.String("movie_info_id", id),
		)
		return nil, fmt.Errorf("find movie info %s: %w", id, err)
	}

	return &movie, nil
}

func (r *movieInfoRepository) Create(ctx context.Context, movie *entity.MovieInfo) error {
	if movie.ID == "" {
		movie.ID = uuid.NewString()
	}

	query := `
		INSERT INTO movie_infos (` + movieInfoColumns + `)
		VALUES ($1, $2, $3, $4, $5)
	`

	_, err := r.db.Exec(ctx, query,
		movie.ID,
		movie.Name,
		movie.Year,
		movie.Cast,
		movie.ReleaseDate,
	)
	if isDuplicateKey(err) {
		r.log.Warn("Movie info id already exists", zap.String("movie_info_id", movie.ID))
		return fmt.Errorf("create movie info %s: %w", movie.ID, ErrDuplicateID)
	}
	if err != nil {
		r.log.Error("Failed to create movie info",
			zap.Error(err),
			zap.String("name", movie.Name),
		)
		return fmt.Errorf("create movie info: %w", err)
	}

	return nil
}

func (r *movieInfoRepository) Update(ctx context.Context, movie *entity.MovieInfo) error {
	query := `
		UPDATE movie_infos
		SET name = $2, year = $3, cast_members = $4, release_date = $5
		WHERE id = $1
	`

	result, err := r.db.Exec(ctx, query,
		movie.ID,
		movie.Name,
		movie.Year,
		movie.Cast,
		movie.ReleaseDate,
	)
	if err != nil {
		r.log.Error("Failed to update movie info",
			zap.Error(err),
			zap.String("movie_info_id", movie.ID),
		)
		return fmt.Errorf("update movie info %s: %w", movie.ID, err)
	}

	if result.RowsAffected() == 0 {
		return fmt.Errorf("update movie info %s: %w", movie.ID, ErrRecordNotFound)
	}

	return nil
}

func (r *movieInfoRepository) DeleteByID(ctx context.Context, id string) error {
	result, err := r.db.Exec(ctx, `DELETE FROM movie_infos WHERE id = $1`, id)
	if err != nil {
		r.log.Error("Failed to delete movie info",
			zap.Error(err),
			zap.String("movie_info_id", id),
		)
		return fmt.Errorf("delete movie info %s: %w", id, err)
	}

	r.log.Debug("Movie info deleted",
		zap.String("movie_info_id", id),
		zap.Int64("rows", result.RowsAffected()),
	)
	return nil
}

func (r *movieInfoRepository) DeleteAll(ctx context.Context) error {
	if _, err := r.db.Exec(ctx, `DELETE FROM movie_infos`); err != nil {
		r.log.Error("Failed to delete all movie infos", zap.Error(err))
		return fmt.Errorf("delete movie infos: %w", err)
	}
	return nil
}

func (r *movieInfoRepository) scanAll(rows pgx.Rows) ([]*entity.MovieInfo, error) {
	defer rows.Close()

	var movies []*entity.MovieInfo
	for rows.Next() {
		var movie entity.MovieInfo
		err := rows.Scan(
			&movie.ID,
			&movie.Name,
			&movie.Year,
			&movie.Cast,
			&movie.ReleaseDate,
		)
		if err != nil {
			r.log.Error("Failed to scan movie info row", zap.Error(err))
			return nil, fmt.Errorf("scan movie info: %w", err)
		}
		movies = append(movies, &movie)
	}

	if err := rows.Err(); err != nil {
		r.log.Error("Rows iteration error", zap.Error(err))
		return nil, fmt.Errorf("iterate movie infos: %w", err)
	}

	r.log.Debug("Movie infos found", zap.Int("count", len(movies)))
	return movies, nil
}
