package leaderboard

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/vytor/arithmetica/internal/logger"
	"github.com/vytor/arithmetica/internal/repository"
)

// Key is the key-value entry holding the leaderboard.
const Key = "leaderboard"

// Store persists the leaderboard.
type Store interface {
	// Get returns the stored scores, or an empty list when nothing was saved.
	Get(ctx context.Context) ([]int, error)
	// Clear removes every stored score.
	Clear(ctx context.Context) error
	// Record merges score into the stored list in one read-modify-write and
	// returns the new list.
	Record(ctx context.Context, score int, limit int) ([]int, error)
}

type kvStore struct {
	repo repository.KeyValueRepository
	key  string
}

// NewStore keeps the leaderboard as a JSON array under Key.
func NewStore(repo repository.KeyValueRepository) Store {
	return &kvStore{repo: repo, key: Key}
}

func (s *kvStore) Get(ctx context.Context) ([]int, error) {
	value, found, err := s.repo.Get(ctx, s.key)
	if err != nil {
		return nil, fmt.Errorf("get leaderboard: %w", err)
	}
	if !found {
		return []int{}, nil
	}
	return Decode(value)
}

func (s *kvStore) Clear(ctx context.Context) error {
	if err := s.repo.Delete(ctx, s.key); err != nil {
		return fmt.Errorf("clear leaderboard: %w", err)
	}
	return nil
}

func (s *kvStore) Record(ctx context.Context, score int, limit int) ([]int, error) {
	log := logger.FromContext(ctx).WithPrefix("leaderboard")

	var merged []int
	err := s.repo.Update(ctx, s.key, func(value string, found bool) (string, error) {
		current := []int{}
		if found {
			decoded, err := Decode(value)
			if err != nil {
				return "", err
			}
			current = decoded
		}
		merged = Merge(current, score, limit)
		return Encode(merged)
	})
	if err != nil {
		return nil, fmt.Errorf("record score: %w", err)
	}
	log.Debug("recorded score %d, leaderboard has %d entries", score, len(merged))
	return merged, nil
}

// Encode serializes scores as a JSON array.
func Encode(scores []int) (string, error) {
	if scores == nil {
		scores = []int{}
	}
	b, err := json.Marshal(scores)
	if err != nil {
		return "", fmt.Errorf("encode leaderboard: %w", err)
	}
	return string(b), nil
}

// Decode parses a JSON array of scores. A blank value is an empty list.
func Decode(value string) ([]int, error) {
	if strings.TrimSpace(value) == "" {
		return []int{}, nil
	}
	var scores []int
	if err := json.Unmarshal([]byte(value), &scores); err != nil {
		return nil, fmt.Errorf("decode leaderboard: %w", err)
	}
	if scores == nil {
		scores = []int{}
	}
	return scores, nil
}
