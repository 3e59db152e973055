package service

import (
	"time"

	"github.com/aussiebroadwan/taskdeck/internal/taskdeck/domain"
)

// Points awarded per genuine task completion.
const (
	completionBasePoints = 10
	bonusHighPriority    = 5
	bonusMediumPriority  = 2
)

// Badge thresholds.
const (
	badgeProductivityMaster = "Productivity Master"
	badgeWeekStreak         = "7-Day Streak"
	badgeTaskCloser         = "Task Closer"

	badgePointsThreshold    = 100
	badgeStreakThreshold    = 7
	badgeCompletedThreshold = 50
)

// completionPoints returns the award for completing a task of the
// given priority.
func completionPoints(p domain.Priority) int {
	switch p {
	case domain.PriorityHigh:
		return completionBasePoints + bonusHighPriority
	case domain.PriorityMedium:
		return completionBasePoints + bonusMediumPriority
	default:
		return completionBasePoints
	}
}

// nextStreak computes the streak after a completion on today. A
// completion the day after the last one extends the streak; a second
// completion on the same day leaves it alone; anything else (no prior
// completion, or a gap) starts over at 1.
func nextStreak(current int, last *time.Time, today time.Time) int {
	if last != nil {
		if sameDate(*last, today.AddDate(0, 0, -1)) {
			return current + 1
		}
		if sameDate(*last, today) {
			return current
		}
	}
	return 1
}

func sameDate(a, b time.Time) bool {
	ay, am, ad := a.Date()
	by, bm, bd := b.Date()
	return ay == by && am == bm && ad == bd
}

// earnedBadges lists the badges unlocked by the given totals.
func earnedBadges(points, streak, completed int) []string {
	badges := []string{}
	if points >= badgePointsThreshold {
		badges = append(badges, badgeProductivityMaster)
	}
	if streak >= badgeStreakThreshold {
		badges = append(badges, badgeWeekStreak)
	}
	if completed >= badgeCompletedThreshold {
		badges = append(badges, badgeTaskCloser)
	}
	return badges
}
