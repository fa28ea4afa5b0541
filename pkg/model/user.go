package model

import "time"

type UserRole string

const (
	RoleAdmin   UserRole = "ADMIN"
	RoleStaff   UserRole = "STAFF"
	RoleStudent UserRole = "STUDENT"
)

type UserStatus string

const (
	UserActive   UserStatus = "ACTIVE"
	UserInactive UserStatus = "INACTIVE"
)

type User struct {
	ID        string     `json:"id,omitempty" bson:"_id,omitempty" validate:"omitempty,mongodb"`
	Name      string     `json:"name" bson:"name" validate:"required,min=2,max=100"`
	Email     string     `json:"email" bson:"email" validate:"required,email"`
	Phone     string     `json:"phone,omitempty" bson:"phone,omitempty" validate:"omitempty,e164"`
	Role      UserRole   `json:"role" bson:"role" validate:"required,oneof=ADMIN STAFF STUDENT"`
	Status    UserStatus `json:"status" bson:"status" validate:"required,oneof=ACTIVE INACTIVE"`
	CreatedAt time.Time  `json:"created_at" bson:"created_at" validate:"omitempty"`
}
