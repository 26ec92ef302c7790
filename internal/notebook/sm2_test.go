package notebook

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestNextReview(t *testing.T) {
	now := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)

	tests := []struct {
		name             string
		previous         ReviewState
		quality          int
		expectedInterval int
		expectedStreak   int
	}{
		{
			name:             "first correct answer schedules one day",
			previous:         ReviewState{EasinessFactor: DefaultEasinessFactor},
			quality:          4,
			expectedInterval: 1,
			expectedStreak:   1,
		},
		{
			name: "second correct answer schedules six days",
			previous: ReviewState{
				EasinessFactor: DefaultEasinessFactor,
				IntervalDays:   1,
				CorrectStreak:  1,
			},
			quality:          4,
			expectedInterval: 6,
			expectedStreak:   2,
		},
		{
			name: "third correct answer grows by easiness factor",
			previous: ReviewState{
				EasinessFactor: 2.5,
				IntervalDays:   6,
				CorrectStreak:  2,
			},
			quality:          4,
			expectedInterval: 15, // ceil(6 * 2.5)
			expectedStreak:   3,
		},
		{
			name: "wrong answer while learning resets to one day",
			previous: ReviewState{
				EasinessFactor: 2.5,
				IntervalDays:   6,
				CorrectStreak:  2,
			},
			quality:          1,
			expectedInterval: 1,
			expectedStreak:   0,
		},
		{
			name: "wrong answer on learned entry keeps part of the interval",
			previous: ReviewState{
				EasinessFactor: 2.5,
				IntervalDays:   30,
				CorrectStreak:  6,
			},
			quality:          1,
			expectedInterval: 18, // ceil(30 * 0.6)
			expectedStreak:   0,
		},
		{
			name:             "zero easiness factor falls back to the default",
			previous:         ReviewState{},
			quality:          5,
			expectedInterval: 1,
			expectedStreak:   1,
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			next := NextReview(tc.previous, tc.quality, now)
			assert.Equal(t, tc.expectedInterval, next.IntervalDays)
			assert.Equal(t, tc.expectedStreak, next.CorrectStreak)
			assert.Equal(t, now, next.ReviewedAt)
			assert.Equal(t, now.AddDate(0, 0, tc.expectedInterval), next.DueAt)
			assert.GreaterOrEqual(t, next.EasinessFactor, MinEasinessFactor)
		})
	}
}

func TestNextReview_EasinessFactor(t *testing.T) {
	now := time.Now()

	t.Run("perfect answer raises the factor", func(t *testing.T) {
		next := NextReview(ReviewState{EasinessFactor: 2.5}, 5, now)
		assert.InDelta(t, 2.6, next.EasinessFactor, 0.01)
	})

	t.Run("quality 4 keeps the factor", func(t *testing.T) {
		next := NextReview(ReviewState{EasinessFactor: 2.5}, 4, now)
		assert.InDelta(t, 2.5, next.EasinessFactor, 0.01)
	})

	t.Run("wrong answer on a long streak is penalized less", func(t *testing.T) {
		short := NextReview(ReviewState{EasinessFactor: 2.5, CorrectStreak: 1}, 1, now)
		long := NextReview(ReviewState{EasinessFactor: 2.5, CorrectStreak: 12}, 1, now)
		assert.Greater(t, long.EasinessFactor, short.EasinessFactor)
	})

	t.Run("factor never drops below the minimum", func(t *testing.T) {
		next := NextReview(ReviewState{EasinessFactor: MinEasinessFactor}, 0, now)
		assert.Equal(t, MinEasinessFactor, next.EasinessFactor)
	})
}

func TestReviewState_Due(t *testing.T) {
	now := time.Date(2025, 6, 10, 0, 0, 0, 0, time.UTC)

	t.Run("never reviewed is always due", func(t *testing.T) {
		assert.True(t, ReviewState{DueAt: now.AddDate(0, 0, 5)}.Due(now))
	})

	t.Run("not due before the scheduled date", func(t *testing.T) {
		state := ReviewState{ReviewedAt: now.AddDate(0, 0, -1), DueAt: now.AddDate(0, 0, 3)}
		assert.False(t, state.Due(now))
	})

	t.Run("due on the scheduled date", func(t *testing.T) {
		state := ReviewState{ReviewedAt: now.AddDate(0, 0, -6), DueAt: now}
		assert.True(t, state.Due(now))
	})
}
