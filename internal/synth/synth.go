package synth

import (
	"math"
	"math/rand"
	"strings"
	"time"

	"github.com/brianvoe/gofakeit/v6"
)

// Synth produces the random scalar values the entity factory needs. All
// randomness flows through a single seeded source so that a fixed seed
// reproduces the exact same dataset, value by value and pick by pick.
type Synth struct {
	rng   *rand.Rand
	faker *gofakeit.Faker
}

// New creates a Synth. A seed <= 0 picks a time-based one, making each run
// unique; any positive seed makes the run fully reproducible.
func New(seed int64) *Synth {
	if seed <= 0 {
		seed = time.Now().UnixNano()
	}
	return &Synth{
		rng:   rand.New(rand.NewSource(seed)),
		faker: gofakeit.New(seed),
	}
}

// PersonName returns a fake full name.
func (s *Synth) PersonName() string {
	return s.faker.Name()
}

// Address returns a fake single-line street address.
func (s *Synth) Address() string {
	addr := s.faker.Address().Address
	return strings.ReplaceAll(addr, "\n", ", ")
}

// MinuteBetween samples a time of day with the hour uniform in
// [hourStart, hourEnd] and the minute uniform in [0, 59], returned as a
// minute of day in [0, 1439].
func (s *Synth) MinuteBetween(hourStart, hourEnd int) int {
	hour := s.IntBetween(hourStart, hourEnd)
	minute := s.rng.Intn(60)
	return hour*60 + minute
}

// MeasureValue samples uniformly in [min, max], rounded to 2 decimals.
func (s *Synth) MeasureValue(min, max float64) float64 {
	v := min + s.rng.Float64()*(max-min)
	return math.Round(v*100) / 100
}

// PastTime returns now shifted into the past by a uniform 0..maxDays days
// and 0..23 hours.
func (s *Synth) PastTime(now time.Time, maxDays int) time.Time {
	days := s.rng.Intn(maxDays + 1)
	hours := s.rng.Intn(24)
	return now.Add(-time.Duration(days)*24*time.Hour - time.Duration(hours)*time.Hour)
}

// Bool is a fair coin flip.
func (s *Synth) Bool() bool {
	return s.rng.Intn(2) == 1
}

// Chance returns true with probability p.
func (s *Synth) Chance(p float64) bool {
	return s.rng.Float64() < p
}

// IntBetween samples uniformly in [min, max], inclusive on both ends.
func (s *Synth) IntBetween(min, max int) int {
	return min + s.rng.Intn(max-min+1)
}

// Sample returns k distinct elements of items, in random order. Callers
// must ensure 0 <= k <= len(items).
func Sample[T any](s *Synth, items []T, k int) []T {
	idx := s.rng.Perm(len(items))[:k]
	out := make([]T, k)
	for i, j := range idx {
		out[i] = items[j]
	}
	return out
}

// Pick returns one uniformly chosen element of items.
func Pick[T any](s *Synth, items []T) T {
	return items[s.rng.Intn(len(items))]
}
