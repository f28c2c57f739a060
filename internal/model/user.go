package model

import (
	"time"

	"github.com/golang-jwt/jwt/v5"
)

type User struct {
	ID         int64
	Username   string
	FirstName  string
	JoinedDate time.Time
	Balance    int

	// Время последней попытки ограбления, nil - попыток еще не было
	LastTheftTime *time.Time

	// Счетчики статистики ограблений
	TheftAttempts  int
	TheftSuccess   int
	TheftFailed    int
	TheftProtected int
	TheftLosses    int
}

type Admin struct {
	ID       int64
	Login    string
	Password string
}

type AdminClaims struct {
	jwt.RegisteredClaims
}
