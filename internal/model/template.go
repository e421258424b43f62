package model

import "time"

// Template is a remote Formora form definition mirrored locally.
// RemoteID is unique across templates.
type Template struct {
	ID        int64      `json:"id"`
	RemoteID  int64      `json:"remote_id"`
	Title     string     `json:"title"`
	Author    string     `json:"author"`
	Owner     string     `json:"owner"`
	LastSync  *time.Time `json:"last_sync,omitempty"`
	APIToken  string     `json:"-"`
	CreatedAt time.Time  `json:"created_at"`
	Questions []Question `json:"questions,omitempty"`
}
