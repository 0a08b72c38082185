package utils

import (
	"cems/src/config"
	"cems/src/types"
	"fmt"
	"log"
	"os"
	"time"

	"github.com/golang-jwt/jwt/v4"
	"github.com/google/uuid"
)

func GenerateJWT(email string, id uint, role string) (string, error) {
	jwtKey := []byte(os.Getenv("JWT_SECRET"))
	expirationTime := time.Now().Add(24 * time.Hour)
	claims := &types.Claims{
		Username: email,
		Role:     role,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   fmt.Sprint(id),
			ExpiresAt: jwt.NewNumericDate(expirationTime),
			IssuedAt:  jwt.NewNumericDate(time.Now()),
		},
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	tokenString, err := token.SignedString(jwtKey)
	if err != nil {
		log.Printf("Error signing token: %s\n", err.Error())
		return "", err
	}
	return tokenString, nil
}

// NewTicketToken mints the opaque token a booking is keyed on.
func NewTicketToken() string {
	return uuid.NewString()
}

// ParseEventWindow parses a start/end pair, truncated to the minute.
func ParseEventWindow(start, end string) (time.Time, time.Time, error) {
	startTime, err := time.Parse(config.TIME_PARSE_FORMAT, start)
	if err != nil {
		log.Printf("Error parsing start_time: %s\n", err.Error())
		return time.Time{}, time.Time{}, err
	}
	endTime, err := time.Parse(config.TIME_PARSE_FORMAT, end)
	if err != nil {
		log.Printf("Error parsing end_time: %s\n", err.Error())
		return time.Time{}, time.Time{}, err
	}
	truncate := func(t time.Time) time.Time {
		return time.Date(t.Year(), t.Month(), t.Day(), t.Hour(), t.Minute(), 0, 0, t.Location())
	}
	return truncate(startTime), truncate(endTime), nil
}
