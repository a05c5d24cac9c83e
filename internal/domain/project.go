package domain

import (
	"context"
	"time"
)

type ProjectStatus string

const (
	ProjectPending   ProjectStatus = "Pending"
	ProjectOngoing   ProjectStatus = "Ongoing"
	ProjectCompleted ProjectStatus = "Completed"
)

func (s ProjectStatus) Valid() bool {
	switch s {
	case ProjectPending, ProjectOngoing, ProjectCompleted:
		return true
	}
	return false
}

type Project struct {
	ID          int64         `gorm:"column:project_id;primaryKey;autoIncrement" json:"project_id"`
	Name        string        `gorm:"size:191;not null" json:"name"`
	Description string        `gorm:"type:text;not null" json:"description"`
	OwnerID     int64         `gorm:"index;not null" json:"owner_id"`
	StartDate   Date          `gorm:"type:date;not null" json:"start_date"`
	EndDate     Date          `gorm:"type:date;not null" json:"end_date"`
	Status      ProjectStatus `gorm:"size:16;not null" json:"status"`
	CreatedAt   time.Time     `gorm:"autoCreateTime" json:"created_at"`
}

func (Project) TableName() string { return "projects" }

// Validate checks the field formats a project must satisfy before it is
// written. The first failing rule wins.
func (p *Project) Validate() error {
	if p.Name == "" || p.Description == "" || p.OwnerID == 0 ||
		p.StartDate == "" || p.EndDate == "" || p.Status == "" {
		return Invalid(MsgFieldsRequired)
	}
	if !p.StartDate.Valid() || !p.EndDate.Valid() {
		return Invalid(MsgInvalidDate)
	}
	if !p.Status.Valid() {
		return Invalid(MsgInvalidStatus)
	}
	return nil
}

// ProjectRef is the lightweight projection used by selection lists.
type ProjectRef struct {
	ID   int64  `gorm:"column:project_id" json:"project_id"`
	Name string `json:"name"`
}

type ProjectRepository interface {
	Create(ctx context.Context, p *Project) error
	List(ctx context.Context) ([]Project, error)
	// Get returns nil, nil when the project does not exist.
	Get(ctx context.Context, id int64) (*Project, error)
	ListByOwner(ctx context.Context, ownerID int64) ([]ProjectRef, error)
	Update(ctx context.Context, p *Project) error
	Delete(ctx context.Context, id int64) error
}
