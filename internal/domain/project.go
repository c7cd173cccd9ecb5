package domain

import (
	"time"

	"github.com/google/uuid"
)

type ProjectStatus string

const (
	ProjectPitched  ProjectStatus = "pitched"
	ProjectAccepted ProjectStatus = "accepted"
	ProjectArchived ProjectStatus = "archived"
)

type Project struct {
	ID         uuid.UUID     `json:"id"`
	FounderID  uuid.UUID     `json:"founder_id"`
	Name       string        `json:"name"`
	Status     ProjectStatus `json:"status"`
	AcceptedBy *uuid.UUID    `json:"accepted_by,omitempty"`
	AcceptedAt *time.Time    `json:"accepted_at,omitempty"`
	CreatedAt  time.Time     `json:"created_at"`
}
