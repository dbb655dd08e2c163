package wire

import (
	"movies-service/internal/adaptor"

	"github.com/go-chi/chi/v5"
)

func wireReview(r chi.Router, reviewHandler *adaptor.ReviewHandler) {
	r.Route("/v1/reviews", func(r chi.Router) {
		r.Get("/", reviewHandler.GetReviews)
		r.Post("/", reviewHandler.CreateReview)
		r.Get("/stream", reviewHandler.StreamReviews)

		r.Get("/{id}", reviewHandler.GetReviewByID)
		r.Put("/{id}", reviewHandler.UpdateReview)
		r.Delete("/{id}", reviewHandler.DeleteReview)
	})
}
