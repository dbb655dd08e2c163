package wire

import (
	"movies-service/internal/adaptor"

	"github.com/go-chi/chi/v5"
)

func wireMovieInfo(r chi.Router, movieInfoHandler *adaptor.MovieInfoHandler) {
	r.Route("/v1/movieinfos", func(r chi.Router) {
		r.Get("/", movieInfoHandler.GetMovieInfos)
		r.Post("/", movieInfoHandler.CreateMovieInfo)

		// must stay ahead of /{id}
		r.Get("/stream", movieInfoHandler.StreamMovieInfos)

		r.Get("/{id}", movieInfoHandler.GetMovieInfoByID)
		r.Put("/{id}", movieInfoHandler.UpdateMovieInfo)
		r.Delete("/{id}", movieInfoHandler.DeleteMovieInfo)
	})
}
