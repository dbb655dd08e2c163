package repository

import (
	"context"
	"regexp"
	"testing"

	"movies-service/internal/data/entity"

	"github.com/pashagolub/pgxmock/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func TestReviewRepositoryFindByMovieInfoID(t *testing.T) {
	mock := newMockPool(t)
	repo := NewReviewRepository(mock, zap.NewNop())

	rows := pgxmock.NewRows([]string{"id", "movie_info_id", "comment", "rating"}).
		AddRow("r1", "abc", "Awesome Movie", 9.0).
		AddRow("r2", "abc", "Excellent Movie", 8.0)

	mock.ExpectQuery(regexp.QuoteMeta(`FROM reviews WHERE movie_info_id = $1`)).
		WithArgs("abc").
		WillReturnRows(rows)

	reviews, err := repo.FindByMovieInfoID(context.Background(), "abc")
	require.NoError(t, err)
	require.Len(t, reviews, 2)
	assert.Equal(t, "r2", reviews[1].ID)
	assert.Equal(t, 8.0, reviews[1].Rating)

	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestReviewRepositoryUpdateOnlyTouchesCommentAndRating(t *testing.T) {
	mock := newMockPool(t)
	repo := NewReviewRepository(mock, zap.NewNop())

	review := &entity.Review{ID: "r1", MovieInfoID: "abc", Comment: "Updated", Rating: 9.5}

	mock.ExpectExec(regexp.QuoteMeta(`SET comment = $2, rating = $3`)).
		WithArgs("r1", "Updated", 9.5).
		WillReturnResult(pgxmock.NewResult("UPDATE", 1))

	require.NoError(t, repo.Update(context.Background(), review))
	assert.NoError(t, mock.ExpectationsWereMet())
}
