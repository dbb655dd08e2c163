package repository

import (
	"errors"
	"testing"

	"movies-service/internal/data/entity"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"
	"go.mongodb.org/mongo-driver/v2/bson"
	"go.mongodb.org/mongo-driver/v2/mongo"
)

func TestMongoFilters(t *testing.T) {
	assert.Equal(t, bson.D{{Key: "_id", Value: "abc"}}, idFilter("abc"))
	assert.Equal(t, bson.D{{Key: "year", Value: 2005}}, yearFilter(2005))
	assert.Equal(t, bson.D{{Key: "movie_info_id", Value: "1"}}, movieInfoIDFilter("1"))
}

func TestReviewUpdateSetsCommentAndRatingOnly(t *testing.T) {
	review := &entity.Review{ID: "r1", MovieInfoID: "1", Comment: "Not an Awesome Movie", Rating: 8.0}

	want := bson.D{{Key: "$set", Value: bson.D{
		{Key: "comment", Value: "Not an Awesome Movie"},
		{Key: "rating", Value: 8.0},
	}}}
	assert.Equal(t, want, reviewUpdate(review))
}

func TestMovieInfoBSONFieldNames(t *testing.T) {
	raw, err := bson.Marshal(&entity.MovieInfo{ID: "abc", Name: "Dark Knight Rises", Year: 2012, Cast: []string{"Tom Hardy"}, ReleaseDate: date("2012-07-20")})
	assert.NoError(t, err)

	doc := bson.Raw(raw)
	assert.Equal(t, "abc", doc.Lookup("_id").StringValue())
	assert.Equal(t, "Dark Knight Rises", doc.Lookup("name").StringValue())
	assert.Equal(t, bson.TypeDateTime, doc.Lookup("release_date").Type)
}

func TestIsDuplicateKey(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want bool
	}{
		{"nil", nil, false},
		{"plain", errors.New("boom"), false},
		{"mongo duplicate key", mongo.WriteException{WriteErrors: []mongo.WriteError{{Code: 11000, Message: "E11000 duplicate key error"}}}, true},
		{"mongo other write error", mongo.WriteException{WriteErrors: []mongo.WriteError{{Code: 121, Message: "validation"}}}, false},
		{"postgres unique violation", &pgconn.PgError{Code: "23505"}, true},
		{"postgres other", &pgconn.PgError{Code: "23502"}, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, isDuplicateKey(tt.err))
		})
	}
}
