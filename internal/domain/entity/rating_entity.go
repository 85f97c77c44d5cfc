package entity

import "time"

const (
	MinScore = 1
	MaxScore = 5
)

// Rating is a single score given to a university. UserID is stored by value
// and is not a managed relationship, so ratings survive user deletion.
type Rating struct {
	ID           int64     `json:"id"`
	UserID       string    `json:"userId"`
	Score        int       `json:"score"`
	UniversityID int64     `json:"universityId"`
	CreatedAt    time.Time `json:"createdAt"`
}

// ValidScore reports whether s is within [MinScore, MaxScore].
func ValidScore(s int) bool {
	return s >= MinScore && s <= MaxScore
}

// RankEntry is one row of the leaderboard.
type RankEntry struct {
	UniversityID int64   `json:"universityId"`
	Avg          float64 `json:"avg"`
}

// AverageRating is the mean score of one university; 0 when it has no ratings.
type AverageRating struct {
	UniversityID int64   `json:"universityId"`
	Average      float64 `json:"average"`
}
