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

const movieInfoCollection = "movieInfo"

type movieInfoMongoRepository struct {
	coll *mongo.Collection
	log  *zap.Logger
}

func NewMovieInfoMongoRepository(db *mongo.Database, log *zap.Logger) MovieInfoRepository {
	return &movieInfoMongoRepository{
		coll: db.Collection(movieInfoCollection),
		log:  log.With(zap.String("repository", "movie_info"), zap.String("driver", "mongo")),
	}
}

func (r *movieInfoMongoRepository) FindAll(ctx context.Context) ([]*entity.MovieInfo, error) {
	return r.find(ctx, bson.D{})
}

func (r *movieInfoMongoRepository) FindByYear(ctx context.Context, year int) ([]*entity.MovieInfo, error) {
	return r.find(ctx, yearFilter(year))
}

func (r *movieInfoMongoRepository) FindByID(ctx context.Context, id string) (*entity.MovieInfo, error) {
	var movie entity.MovieInfo
	err := r.coll.FindOne(ctx, idFilter(id)).Decode(&movie)
	if errors.Is(err, mongo.ErrNoDocuments) {
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

func (r *movieInfoMongoRepository) Create(ctx context.Context, movie *entity.MovieInfo) error {
	if movie.ID == "" {
		movie.ID = uuid.NewString()
	}

	_, err := r.coll.InsertOne(ctx, movie)
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

func (r *movieInfoMongoRepository) Update(ctx context.Context, movie *entity.MovieInfo) error {
	result, err := r.coll.ReplaceOne(ctx, idFilter(movie.ID), movie)
	if err != nil {
		r.log.Error("Failed to update movie info",
			zap.Error(err),
			zap.String("movie_info_id", movie.ID),
		)
		return fmt.Errorf("update movie info %s: %w", movie.ID, err)
	}

	if result.MatchedCount == 0 {
		return fmt.Errorf("update movie info %s: %w", movie.ID, ErrRecordNotFound)
	}

	return nil
}

func (r *movieInfoMongoRepository) DeleteByID(ctx context.Context, id string) error {
	if _, err := r.coll.DeleteOne(ctx, idFilter(id)); err != nil {
		r.log.Error("Failed to delete movie info",
			zap.Error(err),
			zap.String("movie_info_id", id),
		)
		return fmt.Errorf("delete movie info %s: %w", id, err)
	}
	return nil
}

func (r *movieInfoMongoRepository) DeleteAll(ctx context.Context) error {
	if _, err := r.coll.DeleteMany(ctx, bson.D{}); err != nil {
		r.log.Error("Failed to delete all movie infos", zap.Error(err))
		return fmt.Errorf("delete movie infos: %w", err)
	}
	return nil
}

func (r *movieInfoMongoRepository) find(ctx context.Context, filter bson.D) ([]*entity.MovieInfo, error) {
	cursor, err := r.coll.Find(ctx, filter)
	if err != nil {
		r.log.Error("Failed to find movie infos", zap.Error(err))
		return nil, fmt.Errorf("find movie infos: %w", err)
	}

	var movies []*entity.MovieInfo
	if err := cursor.All(ctx, &movies); err != nil {
		r.log.Error("Failed to decode movie infos", zap.Error(err))
		return nil, fmt.Errorf("decode movie infos: %w", err)
	}

	r.log.Debug("Movie infos found", zap.Int("count", len(movies)))
	return movies, nil
}

func idFilter(id string) bson.D {
	return bson.D{{Key: "_id", Value: id}}
}

func yearFilter(year int) bson.D {
	return bson.D{{Key: "year", Value: year}}
}
