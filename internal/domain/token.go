package domain

import "time"

// Token is an issued sign-in credential.
type Token struct {
	Value     string
	ExpiresAt time.Time
}
