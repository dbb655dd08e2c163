package response

import "movies-service/internal/data/entity"

type ReviewResponse struct {
	ReviewID    string  `json:"reviewId"`
	MovieInfoID string  `json:"movieInfoId"`
	Comment     string  `json:"comment"`
	Rating      float64 `json:"rating"`
}

func ReviewToResponse(r *entity.Review) ReviewResponse {
	return ReviewResponse{
		ReviewID:    r.ID,
		MovieInfoID: r.MovieInfoID,
		Comment:     r.Comment,
		Rating:      r.Rating,
	}
}

func ReviewsToResponse(reviews []*entity.Review) []ReviewResponse {
	out := make([]ReviewResponse, len(reviews))
	for i, r := range reviews {
		out[i] = ReviewToResponse(r)
	}
	return out
}
