package admin

import "time"

type SettingResponse struct {
	Key   string `json:"key"`
	Value string `json:"value"`
}

type SetSettingRequest struct {
	Value string `json:"value"`
}

type BanRequest struct {
	UserID int64  `json:"user_id"`
	Reason string `json:"reason,omitempty"`
}

type BanResponse struct {
	UserID     int64     `json:"user_id"`
	BannedBy   int64     `json:"banned_by"`
	BannedDate time.Time `json:"banned_date"`
	Reason     string    `json:"reason,omitempty"`
}
