// Package models defines the records kept in the local session ledger
package models

import "time"

// Session is a finalized focus session as stored in the ledger.
type Session struct {
	StartTime       time.Time `json:"start_time"`
	EndTime         time.Time `json:"end_time"`
	ID              string    `json:"id"`
	ActivityTag     string    `json:"activity_tag"`
	Mode            string    `json:"mode"`
	Timezone        string    `json:"timezone"`
	DurationSeconds int       `json:"duration_seconds"`
	Coins           int       `json:"coins"`
	XP              int       `json:"xp"`
}

// Duration returns the recorded length of the session.
func (s *Session) Duration() time.Duration {
	return time.Duration(s.DurationSeconds) * time.Second
}

// Profile holds the running totals across all recorded sessions.
type Profile struct {
	LastSession  time.Time `json:"last_session"`
	Sessions     int       `json:"sessions"`
	FocusSeconds int       `json:"focus_seconds"`
	Coins        int       `json:"coins"`
	XP           int       `json:"xp"`
}
