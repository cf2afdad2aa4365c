// services/cooldown.go
package services

import "time"

// TryConsume is the cooldown gate: allow the action exactly when
// now − last >= window, evaluated lazily at call time. It must run inside
// the same repository transform as the mutation it gates, so a racing
// duplicate cannot both read "allowed" before either stamps.
//
// On allow it returns the stamp the caller must record; on deny it returns
// the remaining wait. A nil last stamp means the action has never run and
// is always allowed.
func TryConsume(last *time.Time, window time.Duration, now time.Time) (stamp time.Time, remaining time.Duration, allowed bool) {
	if last != nil {
		if elapsed := now.Sub(*last); elapsed < window {
			return time.Time{}, window - elapsed, false
		}
	}
	return now, 0, true
}
