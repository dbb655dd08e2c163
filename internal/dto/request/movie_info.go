package request

// MovieInfoRequest is the body of POST and PUT /v1/movieinfos.
// MovieInfoID is optional and only honoured on create.
type MovieInfoRequest struct {
	MovieInfoID string   `json:"movieInfoId"`
	Name        string   `json:"name" validate:"required" message:"movieInfo.name must be present"`
	Year        int      `json:"year" validate:"gt=0" message:"movieInfo.year must be a Positive value"`
	Cast        []string `json:"cast" validate:"required,min=1,dive,required" message:"movieInfo.cast must be present"`
	ReleaseDate string   `json:"releaseDate" validate:"required,datetime=2006-01-02" message:"movieInfo.releaseDate must be a valid date"`
}
