package adaptor

import (
	"movies-service/internal/usecase"

	"go.uber.org/zap"
)

type Handler struct {
	MovieInfo *MovieInfoHandler
	Review    *ReviewHandler
}

func NewHandler(service *usecase.Service, log *zap.Logger) *Handler {
	return &Handler{
		MovieInfo: NewMovieInfoHandler(service.MovieInfo, log),
		Review:    NewReviewHandler(service.Review, log),
	}
}
