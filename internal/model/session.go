package model

import "time"

type Session struct {
	ID           string
	AdminID      int64
	RefreshToken string
	ExpiresAt    time.Time
}

type AuthData struct {
	AccessToken  string
	RefreshToken string
	SessionID    string
}
