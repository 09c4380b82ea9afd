// Package leaderboard keeps the local high-score list: distinct scores,
// highest first.
package leaderboard

import (
	"slices"

	"github.com/vytor/arithmetica/internal/models"
)

// Merge adds score to scores, drops duplicates and sorts descending. A
// positive limit keeps only the top entries. The input is not modified.
func Merge(scores []int, score int, limit int) []int {
	merged := make([]int, 0, len(scores)+1)
	merged = append(merged, scores...)
	merged = append(merged, score)
	return Normalize(merged, limit)
}

// Normalize dedupes and sorts scores descending, applying limit when positive.
func Normalize(scores []int, limit int) []int {
	out := slices.Clone(scores)
	slices.Sort(out)
	out = slices.Compact(out)
	slices.Reverse(out)
	if limit > 0 && len(out) > limit {
		out = out[:limit]
	}
	if out == nil {
		out = []int{}
	}
	return out
}

// Entries ranks scores for display, starting at 1.
func Entries(scores []int) []models.LeaderboardEntry {
	entries := make([]models.LeaderboardEntry, 0, len(scores))
	for i, s := range scores {
		entries = append(entries, models.LeaderboardEntry{Rank: i + 1, Score: s})
	}
	return entries
}
