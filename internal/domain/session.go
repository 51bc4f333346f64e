package domain

import "time"

// SessionState is the per-browser form state: entered fields plus derived UI flags.
type SessionState struct {
	Input     SuggestionInput   `json:"input"`
	Profile   *AccountProfile   `json:"profile,omitempty"`
	Bundle    *SuggestionBundle `json:"bundle,omitempty"`
	Error     string            `json:"error,omitempty"`
	ErrorKind string            `json:"errorKind,omitempty"`
	FormError string            `json:"formError,omitempty"`
	Busy      bool              `json:"busy"`
	BusySince time.Time         `json:"busySince,omitempty"`
	UpdatedAt time.Time         `json:"updatedAt"`
}

// IsBusyAt reports whether a request is outstanding and not older than timeout.
func (s *SessionState) IsBusyAt(now time.Time, timeout time.Duration) bool {
	if s == nil || !s.Busy {
		return false
	}
	if timeout > 0 && !s.BusySince.IsZero() && now.Sub(s.BusySince) > timeout {
		return false
	}
	return true
}
