package model

import "time"

type BanEntry struct {
	UserID     int64
	BannedBy   int64
	BannedDate time.Time
	Reason     string
}
