// Kinograph - Movie Catalog and Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/kinograph

package models

// User is a catalog user. The service stores no profile data; the ID
// is the only identity the rating matrix needs.
type User struct {
	ID int `json:"id" validate:"required,min=1"`
}

// Movie is a catalog entry.
type Movie struct {
	ID    int    `json:"id" validate:"required,min=1"`
	Title string `json:"title" validate:"required,max=512"`
}

// Genre is a named movie genre.
type Genre struct {
	ID   int    `json:"id"`
	Name string `json:"name" validate:"required,max=128"`
}

// MovieGenre links a movie to a genre by name.
type MovieGenre struct {
	MovieID   int    `json:"movie_id" validate:"required,min=1"`
	GenreName string `json:"genre_name" validate:"required,max=128"`
}

// Rating is a user's explicit rating of a movie on the 0.5-5.0 scale.
type Rating struct {
	UserID  int     `json:"user_id" validate:"required,min=1"`
	MovieID int     `json:"movie_id" validate:"required,min=1"`
	Value   float64 `json:"value" validate:"required,min=0.5,max=5"`
}

// RatingDetail is a rating joined with the movie's title, as returned
// by history listings.
type RatingDetail struct {
	UserID  int     `json:"user_id"`
	MovieID int     `json:"movie_id"`
	Value   float64 `json:"value"`
	Title   string  `json:"title"`
}

// MovieImport is one parsed row of a movie catalog CSV: the movie
// plus its genre names.
type MovieImport struct {
	ID     int
	Title  string
	Genres []string
}

// MovieRecommendation is one entry in a recommendation response.
type MovieRecommendation struct {
	MovieID         int     `json:"movie_id"`
	Title           string  `json:"title"`
	Genres          string  `json:"genres"`
	PredictedRating float64 `json:"predicted_rating"`
	Explanation     string  `json:"explanation"`
	NonPersonalized bool    `json:"non_personalized"`
}

// RecommendationResponse is the payload of the recommend endpoint,
// pairing the ranked list with the user's rating history.
type RecommendationResponse struct {
	UserID          int                   `json:"user_id"`
	RatingsHistory  []RatingDetail        `json:"ratings_history"`
	Recommendations []MovieRecommendation `json:"recommendations"`
	Personalized    bool                  `json:"personalized"`
}
