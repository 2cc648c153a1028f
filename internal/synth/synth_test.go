package synth

import (
	"math"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestDeterministicWithSameSeed(t *testing.T) {
	a := New(42)
	b := New(42)

	for i := 0; i < 50; i++ {
		require.Equal(t, a.PersonName(), b.PersonName())
		require.Equal(t, a.Address(), b.Address())
		require.Equal(t, a.IntBetween(0, 1000), b.IntBetween(0, 1000))
		require.Equal(t, a.MeasureValue(0, 100), b.MeasureValue(0, 100))
		require.Equal(t, a.Bool(), b.Bool())
	}
}

func TestMinuteBetweenRange(t *testing.T) {
	s := New(1)
	for i := 0; i < 1000; i++ {
		m := s.MinuteBetween(6, 22)
		require.GreaterOrEqual(t, m, 6*60)
		require.LessOrEqual(t, m, 22*60+59)
	}
}

func TestMeasureValueRoundedToTwoDecimals(t *testing.T) {
	s := New(7)
	for i := 0; i < 1000; i++ {
		v := s.MeasureValue(0, 100)
		require.GreaterOrEqual(t, v, 0.0)
		require.LessOrEqual(t, v, 100.0)
		require.Equal(t, math.Round(v*100)/100, v)
	}
}

func TestPastTimeWithinLookback(t *testing.T) {
	s := New(3)
	now := time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC)
	for i := 0; i < 1000; i++ {
		ts := s.PastTime(now, 60)
		require.False(t, ts.After(now))
		require.False(t, ts.Before(now.Add(-61*24*time.Hour)))
	}
}

func TestIntBetweenInclusive(t *testing.T) {
	s := New(5)
	seen := map[int]bool{}
	for i := 0; i < 1000; i++ {
		v := s.IntBetween(2, 4)
		require.GreaterOrEqual(t, v, 2)
		require.LessOrEqual(t, v, 4)
		seen[v] = true
	}
	require.True(t, seen[2])
	require.True(t, seen[4])
}

func TestSampleDistinct(t *testing.T) {
	s := New(9)
	items := []int{1, 2, 3, 4, 5, 6, 7, 8}
	for i := 0; i < 100; i++ {
		got := Sample(s, items, 4)
		require.Len(t, got, 4)
		seen := map[int]bool{}
		for _, v := range got {
			require.False(t, seen[v], "sample returned %d twice", v)
			seen[v] = true
		}
	}
}

func TestAddressSingleLine(t *testing.T) {
	s := New(11)
	for i := 0; i < 100; i++ {
		require.NotContains(t, s.Address(), "\n")
	}
}

func TestChanceExtremes(t *testing.T) {
	s := New(13)
	for i := 0; i < 100; i++ {
		require.False(t, s.Chance(0))
		require.True(t, s.Chance(1))
	}
}
