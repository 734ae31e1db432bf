package models

import (
	"fmt"
	"time"

	"gorm.io/datatypes"
)

type TeamStatus string

const (
	StatusPending  TeamStatus = "pending"
	StatusApproved TeamStatus = "approved"
	StatusRejected TeamStatus = "rejected"
)

// ParseTeamStatus rejects anything outside the three known review states.
func ParseTeamStatus(s string) (TeamStatus, error) {
	switch TeamStatus(s) {
	case StatusPending, StatusApproved, StatusRejected:
		return TeamStatus(s), nil
	}
	return "", fmt.Errorf("invalid team status %q", s)
}

type Team struct {
	ID                 uint                        `gorm:"primaryKey" json:"id"`
	CreatedAt          time.Time                   `gorm:"index:idx_teams_status_created,priority:2" json:"created_at"`
	UpdatedAt          time.Time                   `json:"updated_at"`
	TeamName           string                      `gorm:"uniqueIndex;not null;size:255" json:"team_name"`
	SchoolOrigin       string                      `gorm:"not null;size:255;index" json:"school_origin"`
	Major              string                      `gorm:"not null;size:255" json:"major"`
	ProjectTitle       string                      `gorm:"not null;size:255" json:"project_title"`
	ProjectDescription string                      `gorm:"not null;type:text" json:"project_description"`
	TeamMembers        datatypes.JSONSlice[string] `gorm:"not null" json:"team_members"`
	DocumentPath       *string                     `gorm:"size:255" json:"document_path"`
	ContactEmail       string                      `gorm:"not null;size:255" json:"contact_email"`
	ContactPhone       string                      `gorm:"not null;size:20" json:"contact_phone"`
	Status             TeamStatus                  `gorm:"not null;size:20;default:pending;index;index:idx_teams_status_created,priority:1" json:"status"`
	RegistrationDate   time.Time                   `gorm:"not null" json:"registration_date"`
}

func (t *Team) IsPending() bool {
	return t.Status == StatusPending
}

func (t *Team) IsApproved() bool {
	return t.Status == StatusApproved
}

func (t *Team) HasDocument() bool {
	return t.DocumentPath != nil && *t.DocumentPath != ""
}

// Document returns the stored document path or "" when none was uploaded.
func (t *Team) Document() string {
	if t.DocumentPath == nil {
		return ""
	}
	return *t.DocumentPath
}
