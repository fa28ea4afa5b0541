package model

import "time"

type ResourceType string

const (
	Classroom ResourceType = "CLASSROOM"
	Lab       ResourceType = "LAB"
	EventHall ResourceType = "EVENT_HALL"
)

type ResourceStatus string

const (
	ResourceAvailable   ResourceStatus = "AVAILABLE"
	ResourceUnavailable ResourceStatus = "UNAVAILABLE"
)

type Resource struct {
	ID        string         `json:"id,omitempty" bson:"_id,omitempty" validate:"omitempty,mongodb"`
	Name      string         `json:"name" bson:"name" validate:"required,min=2,max=100"`
	Type      ResourceType   `json:"type" bson:"type" validate:"required,oneof=CLASSROOM LAB EVENT_HALL"`
	Capacity  int            `json:"capacity" bson:"capacity" validate:"required,min=1,max=10000"`
	Status    ResourceStatus `json:"status" bson:"status" validate:"required,oneof=AVAILABLE UNAVAILABLE"`
	CreatedAt time.Time      `json:"created_at" bson:"created_at" validate:"omitempty"`
}

// ResourceUpdate carries a full replacement of the mutable fields, matching
// PUT semantics on /api/resources/:id.
type ResourceUpdate struct {
	Name     string         `json:"name" validate:"required,min=2,max=100"`
	Type     ResourceType   `json:"type" validate:"required,oneof=CLASSROOM LAB EVENT_HALL"`
	Capacity int            `json:"capacity" validate:"required,min=1,max=10000"`
	Status   ResourceStatus `json:"status" validate:"required,oneof=AVAILABLE UNAVAILABLE"`
}
