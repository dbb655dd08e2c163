package entity

type Review struct {
	ID          string  `bson:"_id" db:"id"`
	MovieInfoID string  `bson:"movie_info_id" db:"movie_info_id"`
	Comment     string  `bson:"comment" db:"comment"`
	Rating      float64 `bson:"rating" db:"rating"`
}
