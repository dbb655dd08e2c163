package usecase

import (
	"context"
	"errors"
	"fmt"
	"time"

	"movies-service/internal/broadcast"
	"movies-service/internal/data/entity"
	"movies-service/internal/data/repository"
	"movies-service/internal/dto/request"
	"movies-service/internal/dto/response"

	"go.uber.org/zap"
)

type MovieInfoService interface {
	// GetMovieInfos lists every movie info, or only those released in *year.
	GetMovieInfos(ctx context.Context, year *int) ([]response.MovieInfoResponse, error)
	// GetMovieInfoByID returns nil, nil when the id is absent.
	GetMovieInfoByID(ctx context.Context, id string) (*response.MovieInfoResponse, error)
	CreateMovieInfo(ctx context.Context, req *request.MovieInfoRequest) (*response.MovieInfoResponse, error)
	UpdateMovieInfo(ctx context.Context, id string, req *request.MovieInfoRequest) (*response.MovieInfoResponse, error)
	DeleteMovieInfo(ctx context.Context, id string) error
	// StreamMovieInfos yields created movie infos until ctx is done.
	StreamMovieInfos(ctx context.Context) <-chan response.MovieInfoResponse
}

type movieInfoService struct {
	repo *repository.Repository
	sink *broadcast.Sink[response.MovieInfoResponse]
	log  *zap.Logger
}

func NewMovieInfoService(
	repo *repository.Repository,
	sink *broadcast.Sink[response.MovieInfoResponse],
	log *zap.Logger,
) MovieInfoService {
	return &movieInfoService{
		repo: repo,
		sink: sink,
		log:  log.With(zap.String("service", "movie_info")),
	}
}

func (s *movieInfoService) GetMovieInfos(ctx context.Context, year *int) ([]response.MovieInfoResponse, error) {
	var (
		movies []*entity.MovieInfo
		err    error
	)

	if year != nil {
		movies, err = s.repo.MovieInfo.FindByYear(ctx, *year)
	} else {
		movies, err = s.repo.MovieInfo.FindAll(ctx)
	}
	if err != nil {
		s.log.Error("Failed to get movie infos", zap.Error(err), zap.Intp("year", year))
		return nil, fmt.Errorf("get movie infos: %w", err)
	}

	s.log.Info("Movie infos retrieved",
		zap.Int("count", len(movies)),
		zap.Intp("year", year),
	)

	return response.MovieInfosToResponse(movies), nil
}

func (s *movieInfoService) GetMovieInfoByID(ctx context.Context, id string) (*response.MovieInfoResponse, error) {
	movie, err := s.repo.MovieInfo.FindByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("get movie info by id: %w", err)
	}
	if movie == nil {
		s.log.Debug("Movie info not found", zap.String("movie_info_id", id))
		return nil, nil
	}

	resp := response.MovieInfoToResponse(movie)
	return &resp, nil
}

func (s *movieInfoService) CreateMovieInfo(ctx context.Context, req *request.MovieInfoRequest) (*response.MovieInfoResponse, error) {
	if err := validate(req); err != nil {
		s.log.Warn("Create movie info validation failed", zap.Error(err))
		return nil, err
	}

	movie, err := movieInfoFromRequest(req)
	if err != nil {
		return nil, err
	}

	movie.ID = req.MovieInfoID

	if err := s.repo.MovieInfo.Create(ctx, movie); err != nil {
		if errors.Is(err, repository.ErrDuplicateID) {
			return nil, &DuplicateError{Entity: "MovieInfo", ID: movie.ID}
		}
		return nil, fmt.Errorf("create movie info: %w", err)
	}

	resp := response.MovieInfoToResponse(movie)
	s.sink.Publish(resp)

	s.log.Info("Movie info created",
		zap.String("movie_info_id", movie.ID),
		zap.String("name", movie.Name),
	)

	return &resp, nil
}

func (s *movieInfoService) UpdateMovieInfo(ctx context.Context, id string, req *request.MovieInfoRequest) (*response.MovieInfoResponse, error) {
	existing, err := s.repo.MovieInfo.FindByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("find movie info: %w", err)
	}
	if existing == nil {
		return nil, &NotFoundError{Entity: "MovieInfo", ID: id}
	}

	if err := validate(req); err != nil {
		s.log.Warn("Update movie info validation failed",
			zap.Error(err),
			zap.String("movie_info_id", id),
		)
		return nil, err
	}

	updated, err := movieInfoFromRequest(req)
	if err != nil {
		return nil, err
	}
	updated.ID = existing.ID

	if err := s.repo.MovieInfo.Update(ctx, updated); err != nil {
		if errors.Is(err, repository.ErrRecordNotFound) {
			return nil, &NotFoundError{Entity: "MovieInfo", ID: id}
		}
		return nil, fmt.Errorf("update movie info: %w", err)
	}

	s.log.Info("Movie info updated",
		zap.String("movie_info_id", id),
		zap.String("name", updated.Name),
	)

	resp := response.MovieInfoToResponse(updated)
	return &resp, nil
}

func (s *movieInfoService) DeleteMovieInfo(ctx context.Context, id string) error {
	if err := s.repo.MovieInfo.DeleteByID(ctx, id); err != nil {
		return fmt.Errorf("delete movie info: %w", err)
	}

	s.log.Info("Movie info deleted", zap.String("movie_info_id", id))
	return nil
}

func (s *movieInfoService) StreamMovieInfos(ctx context.Context) <-chan response.MovieInfoResponse {
	return s.sink.Subscribe(ctx)
}

// movieInfoFromRequest expects an already validated request.
func movieInfoFromRequest(req *request.MovieInfoRequest) (*entity.MovieInfo, error) {
	releaseDate, err := time.Parse(response.DateLayout, req.ReleaseDate)
	if err != nil {
		return nil, fmt.Errorf("%w: release date %q", ErrInvalidInput, req.ReleaseDate)
	}

	return &entity.MovieInfo{
		Name:        req.Name,
		Year:        req.Year,
		Cast:        append([]string(nil), req.Cast...),
		ReleaseDate: releaseDate,
	}, nil
}
