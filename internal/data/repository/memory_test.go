package repository

import (
	"context"
	"testing"
	"time"

	"movies-service/internal/data/entity"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func date(s string) time.Time {
	t, err := time.Parse("2006-01-02", s)
	if err != nil {
		panic(err)
	}
	return t
}

func seedMovieInfos(t *testing.T, repo MovieInfoRepository) {
	t.Helper()

	movies := []*entity.MovieInfo{
		{Name: "Batman Begins", Year: 2005, Cast: []string{"Christian Bale", "Michael Cane"}, ReleaseDate: date("2005-06-15")},
		{Name: "The Dark Knight", Year: 2008, Cast: []string{"Christian Bale", "HeathLedger"}, ReleaseDate: date("2008-07-18")},
		{ID: "abc", Name: "Dark Knight Rises", Year: 2012, Cast: []string{"Christian Bale", "Tom Hardy"}, ReleaseDate: date("2012-07-20")},
	}
	for _, m := range movies {
		require.NoError(t, repo.Create(context.Background(), m))
	}
}

func TestMovieInfoMemoryRepository(t *testing.T) {
	ctx := context.Background()

	t.Run("create assigns id and keeps preset id", func(t *testing.T) {
		repo := NewMovieInfoMemoryRepository(zap.NewNop())
		seedMovieInfos(t, repo)

		all, err := repo.FindAll(ctx)
		require.NoError(t, err)
		require.Len(t, all, 3)
		assert.NotEmpty(t, all[0].ID)
		assert.NotEqual(t, all[0].ID, all[1].ID)
		assert.Equal(t, "abc", all[2].ID)
	})

	t.Run("filter by year", func(t *testing.T) {
		repo := NewMovieInfoMemoryRepository(zap.NewNop())
		seedMovieInfos(t, repo)

		movies, err := repo.FindByYear(ctx, 2005)
		require.NoError(t, err)
		require.Len(t, movies, 1)
		assert.Equal(t, "Batman Begins", movies[0].Name)

		movies, err = repo.FindByYear(ctx, 1999)
		require.NoError(t, err)
		assert.Empty(t, movies)
	})

	t.Run("find by id returns a copy", func(t *testing.T) {
		repo := NewMovieInfoMemoryRepository(zap.NewNop())
		seedMovieInfos(t, repo)

		movie, err := repo.FindByID(ctx, "abc")
		require.NoError(t, err)
		require.NotNil(t, movie)
		movie.Name = "changed"
		movie.Cast[0] = "changed"

		again, err := repo.FindByID(ctx, "abc")
		require.NoError(t, err)
		assert.Equal(t, "Dark Knight Rises", again.Name)
		assert.Equal(t, "Christian Bale", again.Cast[0])

		missing, err := repo.FindByID(ctx, "def")
		require.NoError(t, err)
		assert.Nil(t, missing)
	})

	t.Run("update", func(t *testing.T) {
		repo := NewMovieInfoMemoryRepository(zap.NewNop())
		seedMovieInfos(t, repo)

		err := repo.Update(ctx, &entity.MovieInfo{ID: "abc", Name: "Dark Knight Rises1", Year: 2012})
		require.NoError(t, err)

		movie, _ := repo.FindByID(ctx, "abc")
		assert.Equal(t, "Dark Knight Rises1", movie.Name)

		err = repo.Update(ctx, &entity.MovieInfo{ID: "def", Name: "nope"})
		assert.ErrorIs(t, err, ErrRecordNotFound)

		all, _ := repo.FindAll(ctx)
		assert.Len(t, all, 3)
	})

	t.Run("create rejects a taken id", func(t *testing.T) {
		repo := NewMovieInfoMemoryRepository(zap.NewNop())
		seedMovieInfos(t, repo)

		err := repo.Create(ctx, &entity.MovieInfo{ID: "abc", Name: "Overwritten", Year: 2012})
		assert.ErrorIs(t, err, ErrDuplicateID)

		movie, err := repo.FindByID(ctx, "abc")
		require.NoError(t, err)
		assert.Equal(t, "Dark Knight Rises", movie.Name)

		all, _ := repo.FindAll(ctx)
		assert.Len(t, all, 3)
	})

	t.Run("delete is idempotent", func(t *testing.T) {
		repo := NewMovieInfoMemoryRepository(zap.NewNop())
		seedMovieInfos(t, repo)

		require.NoError(t, repo.DeleteByID(ctx, "abc"))
		require.NoError(t, repo.DeleteByID(ctx, "abc"))

		all, _ := repo.FindAll(ctx)
		assert.Len(t, all, 2)

		require.NoError(t, repo.DeleteAll(ctx))
		all, _ = repo.FindAll(ctx)
		assert.Empty(t, all)
	})
}

func TestReviewMemoryRepository(t *testing.T) {
	ctx := context.Background()
	repo := NewReviewMemoryRepository(zap.NewNop())

	reviews := []*entity.Review{
		{MovieInfoID: "1", Comment: "Awesome Movie", Rating: 9.0},
		{MovieInfoID: "1", Comment: "Awesome Movie1", Rating: 9.0},
		{MovieInfoID: "2", Comment: "Excellent Movie", Rating: 8.0},
	}
	for _, r := range reviews {
		require.NoError(t, repo.Create(ctx, r))
		assert.NotEmpty(t, r.ID)
	}

	byMovie, err := repo.FindByMovieInfoID(ctx, "1")
	require.NoError(t, err)
	assert.Len(t, byMovie, 2)

	all, err := repo.FindAll(ctx)
	require.NoError(t, err)
	assert.Len(t, all, 3)

	updated := *reviews[2]
	updated.Comment = "Meh"
	require.NoError(t, repo.Update(ctx, &updated))

	got, err := repo.FindByID(ctx, reviews[2].ID)
	require.NoError(t, err)
	assert.Equal(t, "Meh", got.Comment)

	assert.ErrorIs(t, repo.Update(ctx, &entity.Review{ID: "missing"}), ErrRecordNotFound)

	require.NoError(t, repo.DeleteByID(ctx, reviews[0].ID))
	require.NoError(t, repo.DeleteByID(ctx, reviews[0].ID))
	all, _ = repo.FindAll(ctx)
	assert.Len(t, all, 2)
}
