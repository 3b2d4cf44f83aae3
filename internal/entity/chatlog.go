package entity

import "time"

type ChatLog struct {
	ID         string    `json:"id"`
	UserID     string    `json:"user_id"`
	SessionID  string    `json:"session_id"`
	Question   string    `json:"question"`
	Answer     string    `json:"answer"`
	Intent     string    `json:"intent"`
	Confidence float64   `json:"confidence"`
	Type       string    `json:"type"`
	CreatedAt  time.Time `json:"created_at"`
}
