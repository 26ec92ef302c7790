package notebook

import (
	"math"
	"time"
)

const (
	DefaultEasinessFactor = 2.5
	MinEasinessFactor     = 1.3
)

// NextReview applies one SM-2 grading step to a review state.
// Quality runs from 0 (blackout) to 5 (perfect); quality >= 3 counts as
// correct. The entry's easiness factor, streak and next due date are all
// derived from the previous state.
func NextReview(previous ReviewState, quality int, now time.Time) ReviewState {
	streak := previous.CorrectStreak
	if quality >= 3 {
		streak++
	} else {
		streak = 0
	}

	ef := updateEasinessFactor(previous.EasinessFactor, quality, previous.CorrectStreak)

	var interval int
	if quality < 3 {
		interval = lapseInterval(previous.IntervalDays, previous.CorrectStreak)
	} else {
		interval = nextInterval(previous.IntervalDays, ef, streak)
	}

	return ReviewState{
		EasinessFactor: ef,
		IntervalDays:   interval,
		CorrectStreak:  streak,
		DueAt:          now.AddDate(0, 0, interval),
		ReviewedAt:     now,
	}
}

// updateEasinessFactor calculates the new EF from the quality grade.
// Wrong answers on well-learned entries get a scaled-down penalty.
func updateEasinessFactor(ef float64, quality int, previousCorrectStreak int) float64 {
	if ef == 0 {
		ef = DefaultEasinessFactor
	}

	q := float64(quality)
	delta := 0.1 - (5-q)*(0.08+(5-q)*0.02)

	if quality < 3 && previousCorrectStreak > 2 {
		var scaleFactor float64
		switch {
		case previousCorrectStreak >= 10:
			scaleFactor = 0.37
		case previousCorrectStreak >= 6:
			scaleFactor = 0.56
		default:
			scaleFactor = 0.74
		}
		delta = delta * scaleFactor
	}

	return math.Max(ef+delta, MinEasinessFactor)
}

// nextInterval calculates the interval after a correct answer:
// 1 day, then 6 days, then lastInterval * EF.
func nextInterval(lastInterval int, ef float64, correctStreak int) int {
	if ef == 0 {
		ef = DefaultEasinessFactor
	}

	switch correctStreak {
	case 1:
		return 1
	case 2:
		return 6
	default:
		if lastInterval == 0 {
			lastInterval = 6
		}
		return int(math.Ceil(float64(lastInterval) * ef))
	}
}

// lapseInterval returns the interval after a wrong answer. Entries still in
// the learning phase reset to one day; learned entries keep part of their
// progress.
func lapseInterval(lastInterval int, previousCorrectStreak int) int {
	if previousCorrectStreak <= 2 {
		return 1
	}

	var multiplier float64
	switch {
	case previousCorrectStreak >= 10:
		multiplier = 0.7
	case previousCorrectStreak >= 6:
		multiplier = 0.6
	default:
		multiplier = 0.5
	}

	newInterval := int(math.Ceil(float64(lastInterval) * multiplier))
	if newInterval < 1 {
		return 1
	}
	return newInterval
}
