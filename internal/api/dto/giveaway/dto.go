package giveaway

import "time"

type CreateRequest struct {
	Prize        string    `json:"prize"`
	Description  string    `json:"description"`
	EndDate      time.Time `json:"end_date"`
	MediaFileID  string    `json:"media_file_id,omitempty"`
	MediaType    string    `json:"media_type,omitempty"`
	WinnersCount int       `json:"winners_count"`
}

type CreateResponse struct {
	ID int64 `json:"id"`
}

type EnrollRequest struct {
	UserID int64 `json:"user_id"`
}

type GiveawayResponse struct {
	ID           int64     `json:"id"`
	Prize        string    `json:"prize"`
	Description  string    `json:"description"`
	EndDate      time.Time `json:"end_date"`
	MediaFileID  string    `json:"media_file_id,omitempty"`
	MediaType    string    `json:"media_type,omitempty"`
	Status       string    `json:"status"`
	WinnersCount int       `json:"winners_count"`
	Winners      []int64   `json:"winners,omitempty"` // Только после завершения
}

type DrawResponse struct {
	GiveawayID   int64   `json:"giveaway_id"`
	Winners      []int64 `json:"winners"`
	Participants int     `json:"participants"`
}
