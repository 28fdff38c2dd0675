package domain

import "time"

// Session is one persisted chat session. RegionID and Province track the
// current region focus; they change when the resolver matches a province in a
// message or when the user answers a disambiguation prompt.
type Session struct {
	ID         string    `json:"session_id"`
	RegionID   string    `json:"region_id,omitempty"`
	Province   string    `json:"province,omitempty"`
	CreatedAt  time.Time `json:"created_at"`
	LastActive time.Time `json:"last_active"`
}

// Exchange is one prompt/response pair in a session's history. Province
// records the region focus the exchange was answered under.
type Exchange struct {
	ID        int64     `json:"id"`
	SessionID string    `json:"session_id"`
	Prompt    string    `json:"prompt"`
	Response  string    `json:"response"`
	Province  string    `json:"province,omitempty"`
	CreatedAt time.Time `json:"created_at"`
}
