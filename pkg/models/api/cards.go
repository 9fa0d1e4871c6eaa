package api

import "time"

type GenerateCardsRequest struct {
	UserID      string `json:"user_id"`
	SessionID   string `json:"session_id"`
	AccessToken string `json:"access_token"`
}

type GenerateCardsResponse struct {
	Message string `json:"message"`
	JobID   string `json:"job_id"`
}

type JobStatus struct {
	ID         string     `json:"id"`
	Name       string     `json:"name"`
	Status     string     `json:"status"`
	Error      string     `json:"error,omitempty"`
	EnqueuedAt time.Time  `json:"enqueued_at"`
	StartedAt  *time.Time `json:"started_at,omitempty"`
	FinishedAt *time.Time `json:"finished_at,omitempty"`
}

type ErrorResponse struct {
	Error   string `json:"error"`
	Message string `json:"message"`
}
