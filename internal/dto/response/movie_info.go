package response

import "movies-service/internal/data/entity"

const DateLayout = "2006-01-02"

type MovieInfoResponse struct {
	MovieInfoID string   `json:"movieInfoId"`
	Name        string   `json:"name"`
	Year        int      `json:"year"`
	Cast        []string `json:"cast"`
	ReleaseDate string   `json:"releaseDate"`
}

func MovieInfoToResponse(m *entity.MovieInfo) MovieInfoResponse {
	return MovieInfoResponse{
		MovieInfoID: m.ID,
		Name:        m.Name,
		Year:        m.Year,
		Cast:        m.Cast,
		ReleaseDate: m.ReleaseDate.Format(DateLayout),
	}
}

func MovieInfosToResponse(movies []*entity.MovieInfo) []MovieInfoResponse {
	out := make([]MovieInfoResponse, len(movies))
	for i, m := range movies {
		out[i] = MovieInfoToResponse(m)
	}
	return out
}
