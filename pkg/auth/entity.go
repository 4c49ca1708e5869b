package auth

import "time"

// User is a domain entity representing a registered account.
// ID is generated by the credential store on insert.
type User struct {
	ID           int64
	Email        string
	PasswordHash string
	CreatedAt    time.Time
}
