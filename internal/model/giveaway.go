package model

import "time"

type GiveawayStatus string

const (
	GiveawayStatusActive    GiveawayStatus = "active"
	GiveawayStatusCompleted GiveawayStatus = "completed"
)

type Giveaway struct {
	ID           int64
	Prize        string
	Description  string
	EndDate      time.Time
	MediaFileID  string
	MediaType    string
	Status       GiveawayStatus
	WinnersCount int
	Winners      []int64 // Заполняется один раз при завершении
}

type DrawResult struct {
	GiveawayID   int64
	Winners      []int64
	Participants int
}
