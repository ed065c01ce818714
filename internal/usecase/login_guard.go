package usecase

import (
	"math"
	"time"

	"soukly/internal/domain/entity"
)

const (
	maxFailedLogins = 3
	lockoutWindow   = 10 * time.Minute
)

// loginLocked reports whether the account is inside its lockout window after
// repeated failed logins, and how many whole minutes remain. The counter is
// not touched by a successful login; it resets only when the window expires
// and a fresh strike window begins.
func loginLocked(user *entity.User, now time.Time) (bool, int) {
	if user.FailedLoginCount < maxFailedLogins || user.LastFailedLogin == nil {
		return false, 0
	}

	elapsed := now.Sub(*user.LastFailedLogin)
	if elapsed >= lockoutWindow {
		return false, 0
	}

	remaining := lockoutWindow - elapsed
	return true, int(math.Ceil(remaining.Minutes()))
}
