package adaptor

import (
	"encoding/json"
	"fmt"
	"net/http"
	"strconv"

	"movies-service/internal/dto/request"
	"movies-service/internal/usecase"
	"movies-service/pkg/utils"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

type MovieInfoHandler struct {
	service usecase.MovieInfoService
	log     *zap.Logger
}

func NewMovieInfoHandler(service usecase.MovieInfoService, log *zap.Logger) *MovieInfoHandler {
	return &MovieInfoHandler{
		service: service,
		log:     log.With(zap.String("handler", "movie_info")),
	}
}

// GetMovieInfos handles GET /v1/movieinfos[?year=]
func (h *MovieInfoHandler) GetMovieInfos(w http.ResponseWriter, r *http.Request) {
	year, err := parseYear(r.URL.Query().Get("year"))
	if err != nil {
		h.handleServiceError(w, err, "get movie infos")
		return
	}

	movies, err := h.service.GetMovieInfos(r.Context(), year)
	if err != nil {
		h.handleServiceError(w, err, "get movie infos")
		return
	}

	utils.ResponseSuccess(w, "success", movies)
}

// GetMovieInfoByID handles GET /v1/movieinfos/{id}
func (h *MovieInfoHandler) GetMovieInfoByID(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	movie, err := h.service.GetMovieInfoByID(r.Context(), id)
	if err != nil {
		h.handleServiceError(w, err, "get movie info by ID")
		return
	}
	if movie == nil {
		h.handleServiceError(w, &usecase.NotFoundError{Entity: "MovieInfo", ID: id}, "get movie info by ID")
		return
	}

	utils.ResponseSuccess(w, "success", movie)
}

// CreateMovieInfo handles POST /v1/movieinfos
func (h *MovieInfoHandler) CreateMovieInfo(w http.ResponseWriter, r *http.Request) {
	var req request.MovieInfoRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.ResponseBadRequest(w, "Invalid request body", nil)
		return
	}

	movie, err := h.service.CreateMovieInfo(r.Context(), &req)
	if err != nil {
		h.handleServiceError(w, err, "create movie info")
		return
	}

	utils.ResponseCreated(w, "Movie info created successfully", movie)
}

// UpdateMovieInfo handles PUT /v1/movieinfos/{id}
func (h *MovieInfoHandler) UpdateMovieInfo(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	var req request.MovieInfoRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.ResponseBadRequest(w, "Invalid request body", nil)
		return
	}

	movie, err := h.service.UpdateMovieInfo(r.Context(), id, &req)
	if err != nil {
		h.handleServiceError(w, err, "update movie info")
		return
	}

	utils.ResponseSuccess(w, "Movie info updated successfully", movie)
}

// DeleteMovieInfo handles DELETE /v1/movieinfos/{id}
func (h *MovieInfoHandler) DeleteMovieInfo(w http.ResponseWriter, r *http.Request) {
	if err := h.service.DeleteMovieInfo(r.Context(), chi.URLParam(r, "id")); err != nil {
		h.handleServiceError(w, err, "delete movie info")
		return
	}

	utils.ResponseNoContent(w)
}

// StreamMovieInfos handles GET /v1/movieinfos/stream
func (h *MovieInfoHandler) StreamMovieInfos(w http.ResponseWriter, r *http.Request) {
	h.log.Info("Movie info stream opened", zap.String("remote_addr", r.RemoteAddr))
	streamNDJSON(h.log, w, r, h.service.StreamMovieInfos(r.Context()))
}

func (h *MovieInfoHandler) handleServiceError(w http.ResponseWriter, err error, operation string) {
	handleServiceError(h.log, w, err, operation)
}

// parseYear returns nil for an absent filter.
func parseYear(value string) (*int, error) {
	if value == "" {
		return nil, nil
	}

	year, err := strconv.Atoi(value)
	if err != nil {
		return nil, fmt.Errorf("%w: year must be an integer, got %q", usecase.ErrInvalidInput, value)
	}

	return &year, nil
}
