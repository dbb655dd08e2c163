package adaptor

import (
	"encoding/json"
	"net/http"

	"movies-service/internal/dto/request"
	"movies-service/internal/usecase"
	"movies-service/pkg/utils"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

type ReviewHandler struct {
	service usecase.ReviewService
	log     *zap.Logger
}

func NewReviewHandler(service usecase.ReviewService, log *zap.Logger) *ReviewHandler {
	return &ReviewHandler{
		service: service,
		log:     log.With(zap.String("handler", "review")),
	}
}

// GetReviews handles GET /v1/reviews[?movieInfoId=]
func (h *ReviewHandler) GetReviews(w http.ResponseWriter, r *http.Request) {
	var movieInfoID *string
	if query := r.URL.Query(); query.Has("movieInfoId") {
		id := query.Get("movieInfoId")
		movieInfoID = &id
	}

	reviews, err := h.service.GetReviews(r.Context(), movieInfoID)
	if err != nil {
		h.handleServiceError(w, err, "get reviews")
		return
	}

	utils.ResponseSuccess(w, "success", reviews)
}

// GetReviewByID handles GET /v1/reviews/{id}
func (h *ReviewHandler) GetReviewByID(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	review, err := h.service.GetReviewByID(r.Context(), id)
	if err != nil {
		h.handleServiceError(w, err, "get review by ID")
		return
	}
	if review == nil {
		h.handleServiceError(w, &usecase.NotFoundError{Entity: "Review", ID: id}, "get review by ID")
		return
	}

	utils.ResponseSuccess(w, "success", review)
}

// CreateReview handles POST /v1/reviews
func (h *ReviewHandler) CreateReview(w http.ResponseWriter, r *http.Request) {
	var req request.ReviewRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.ResponseBadRequest(w, "Invalid request body", nil)
		return
	}

	review, err := h.service.CreateReview(r.Context(), &req)
	if err != nil {
		h.handleServiceError(w, err, "create review")
		return
	}

	utils.ResponseCreated(w, "Review created successfully", review)
}

// UpdateReview handles PUT /v1/reviews/{id}
func (h *ReviewHandler) UpdateReview(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	var req request.ReviewUpdateRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.ResponseBadRequest(w, "Invalid request body", nil)
		return
	}

	review, err := h.service.UpdateReview(r.Context(), id, &req)
	if err != nil {
		h.handleServiceError(w, err, "update review")
		return
	}

	utils.ResponseSuccess(w, "Review updated successfully", review)
}

// DeleteReview handles DELETE /v1/reviews/{id}
func (h *ReviewHandler) DeleteReview(w http.ResponseWriter, r *http.Request) {
	if err := h.service.DeleteReview(r.Context(), chi.URLParam(r, "id")); err != nil {
		h.handleServiceError(w, err, "delete review")
		return
	}

	utils.ResponseNoContent(w)
}

// StreamReviews handles GET /v1/reviews/stream
func (h *ReviewHandler) StreamReviews(w http.ResponseWriter, r *http.Request) {
	h.log.Info("Review stream opened", zap.String("remote_addr", r.RemoteAddr))
	streamNDJSON(h.log, w, r, h.service.StreamReviews(r.Context()))
}

func (h *ReviewHandler) handleServiceError(w http.ResponseWriter, err error, operation string) {
	handleServiceError(h.log, w, err, operation)
}
