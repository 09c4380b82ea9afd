package models

type LeaderboardEntry struct {
	Rank  int `json:"rank"`
	Score int `json:"score"`
}

type Leaderboard struct {
	Entries []LeaderboardEntry `json:"entries"`
	Message string             `json:"message,omitempty"`
}
