package memory

import (
	"sync"

	"github.com/omarshaarawi/hoopswrapped/internal/models"
)

type BoxScoreKey struct {
	MatchupPeriod int
	ScoringPeriod int
}

// BoxScoreRepository memoizes box-score lookups for one analytics session.
type BoxScoreRepository struct {
	entries map[BoxScoreKey][]models.BoxScore
	hits    int
	misses  int
	mu      sync.RWMutex
}

func NewBoxScoreRepository() *BoxScoreRepository {
	return &BoxScoreRepository{entries: make(map[BoxScoreKey][]models.BoxScore)}
}

func (r *BoxScoreRepository) SaveBoxScores(matchupPeriod, scoringPeriod int, boxes []models.BoxScore) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.entries[BoxScoreKey{matchupPeriod, scoringPeriod}] = boxes
}

// GetBoxScores returns the cached day and records a hit or miss.
func (r *BoxScoreRepository) GetBoxScores(matchupPeriod, scoringPeriod int) ([]models.BoxScore, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	boxes, ok := r.entries[BoxScoreKey{matchupPeriod, scoringPeriod}]
	if ok {
		r.hits++
	} else {
		r.misses++
	}
	return boxes, ok
}

func (r *BoxScoreRepository) Stats() (hits, misses int) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.hits, r.misses
}

func (r *BoxScoreRepository) Len() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.entries)
}
