package usecase

import (
	"movies-service/internal/broadcast"
	"movies-service/internal/data/repository"
	"movies-service/internal/dto/response"

	"go.uber.org/zap"
)

// Streams holds the process-wide sinks that created records are published
// to. They are built once at startup and shared by services and handlers.
type Streams struct {
	MovieInfo *broadcast.Sink[response.MovieInfoResponse]
	Review    *broadcast.Sink[response.ReviewResponse]
}

func NewStreams(replay int) *Streams {
	return &Streams{
		MovieInfo: broadcast.New[response.MovieInfoResponse](replay),
		Review:    broadcast.New[response.ReviewResponse](replay),
	}
}

// Close ends every open stream.
func (s *Streams) Close() {
	s.MovieInfo.Close()
	s.Review.Close()
}

type Service struct {
	MovieInfo MovieInfoService
	Review    ReviewService
}

func NewService(repo *repository.Repository, streams *Streams, log *zap.Logger) *Service {
	return &Service{
		MovieInfo: NewMovieInfoService(repo, streams.MovieInfo, log),
		Review:    NewReviewService(repo, streams.Review, log),
	}
}
