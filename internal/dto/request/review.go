package request

type ReviewRequest struct {
	MovieInfoID string   `json:"movieInfoId" validate:"required" message:"rating.movieInfoId : must not be null"`
	Comment     string   `json:"comment"`
	Rating      *float64 `json:"rating" validate:"required,min=0" message:"rating.negative : please pass a non-negative value" message_required:"rating.rating : must not be null"`
}

// ReviewUpdateRequest carries the only fields an update may change.
type ReviewUpdateRequest struct {
	Comment string   `json:"comment"`
	Rating  *float64 `json:"rating" validate:"required,min=0" message:"rating.negative : please pass a non-negative value" message_required:"rating.rating : must not be null"`
}
