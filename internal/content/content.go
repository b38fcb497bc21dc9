// Package content models the portfolio sections and their CRUD backend.
//
// Sections live in a generic document store (entity type + id + JSON
// payload) so the admin panel can edit them without schema changes. When
// the store has nothing for a section, the embedded defaults are served
// instead; a fresh deployment renders a complete site before anything has
// been edited.
package content

import (
	"context"
	"encoding/json"
	"errors"
	"time"
)

// ErrNotFound is returned when a document does not exist.
var ErrNotFound = errors.New("content not found")

// Entity types known to the site and admin panel.
const (
	TypeAbout         = "about"
	TypeProject       = "project"
	TypeExperience    = "experience"
	TypeEducation     = "education"
	TypeSkill         = "skill"
	TypeCertification = "certification"
)

// EntityTypes lists every editable type in display order.
var EntityTypes = []string{
	TypeAbout, TypeProject, TypeExperience, TypeEducation, TypeSkill, TypeCertification,
}

// Document is one stored content record.
type Document struct {
	EntityType string          `json:"entityType"`
	ID         string          `json:"id"`
	Payload    json.RawMessage `json:"payload"`
	CreatedAt  time.Time       `json:"createdAt"`
	UpdatedAt  time.Time       `json:"updatedAt"`
}

// Store is the generic CRUD backend the portfolio sections live in.
type Store interface {
	// Get returns a single document or ErrNotFound.
	Get(ctx context.Context, entityType, id string) (Document, error)
	// List returns every document of a type, oldest first.
	List(ctx context.Context, entityType string) ([]Document, error)
	// Create inserts a new document; the id must be unused.
	Create(ctx context.Context, entityType, id string, payload json.RawMessage) error
	// Update replaces the payload of an existing document or returns
	// ErrNotFound.
	Update(ctx context.Context, entityType, id string, payload json.RawMessage) error
	// Delete removes a document or returns ErrNotFound.
	Delete(ctx context.Context, entityType, id string) error
}

// About is the singleton home-page blurb (id "about").
type About struct {
	Headline string `json:"headline" yaml:"headline"`
	Body     string `json:"body" yaml:"body"`
}

// Project is one portfolio project card.
type Project struct {
	Title       string `json:"title" yaml:"title"`
	Description string `json:"description" yaml:"description"`
	Link        string `json:"link,omitempty" yaml:"link,omitempty"`
}

// Experience is one work-history entry.
type Experience struct {
	Title     string   `json:"title" yaml:"title"`
	Company   string   `json:"company" yaml:"company"`
	StartDate string   `json:"startDate" yaml:"startDate"`
	EndDate   string   `json:"endDate" yaml:"endDate"`
	LogoPath  string   `json:"logoPath,omitempty" yaml:"logoPath,omitempty"`
	Bullets   []string `json:"bullets" yaml:"bullets"`
}

// Education is one degree or program entry.
type Education struct {
	Degree      string   `json:"degree" yaml:"degree"`
	Institution string   `json:"institution" yaml:"institution"`
	StartDate   string   `json:"startDate" yaml:"startDate"`
	EndDate     string   `json:"endDate" yaml:"endDate"`
	LogoPath    string   `json:"logoPath,omitempty" yaml:"logoPath,omitempty"`
	Bullets     []string `json:"bullets" yaml:"bullets"`
}

// Skill is one skills-grid entry.
type Skill struct {
	Name  string `json:"name" yaml:"name"`
	Level string `json:"level,omitempty" yaml:"level,omitempty"`
}

// Certification is one certification badge.
type Certification struct {
	Name   string `json:"name" yaml:"name"`
	Issuer string `json:"issuer" yaml:"issuer"`
	Code   string `json:"code,omitempty" yaml:"code,omitempty"`
}

// ValidType reports whether entityType is editable through the admin panel.
func ValidType(entityType string) bool {
	for _, t := range EntityTypes {
		if t == entityType {
			return true
		}
	}
	return false
}
