package model

import "time"

// BookingLock is an advisory lock preventing two concurrent creates from
// racing on the same slot while the conflict check runs.
type BookingLock struct {
	ID        string    `bson:"_id" json:"id"`
	ExpiresAt time.Time `bson:"expires_at" json:"expires_at"`
	CreatedAt time.Time `bson:"created_at" json:"created_at"`
}
