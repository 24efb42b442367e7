package store

import "github.com/ayoisaiah/focusring/timer"

const (
	coinsPerMinute = 1
	xpPerMinute    = 10

	// sessions at least this long earn bonusPercent extra xp
	bonusMinutes = 25
	bonusPercent = 25
)

// Award computes the reward for a session of the given length. Only full
// minutes count.
func Award(durationSeconds int) timer.Reward {
	mins := durationSeconds / 60
	if mins <= 0 {
		return timer.Reward{}
	}

	xp := mins * xpPerMinute
	if mins >= bonusMinutes {
		xp += xp * bonusPercent / 100
	}

	return timer.Reward{
		Coins: mins * coinsPerMinute,
		XP:    xp,
	}
}
