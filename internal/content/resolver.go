package content

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
)

// Resolver answers "what should this section show right now": edited
// documents from the store when present, embedded defaults otherwise.
// Store errors also fall back to defaults - a broken database renders the
// stock site rather than an error page.
type Resolver struct {
	store    Store
	defaults Defaults
}

// NewResolver creates a resolver. store may be nil, in which case every
// section resolves to its default.
func NewResolver(store Store, defaults Defaults) *Resolver {
	return &Resolver{store: store, defaults: defaults}
}

// About resolves the home-page blurb.
func (r *Resolver) About(ctx context.Context) About {
	if r.store == nil {
		return r.defaults.About
	}
	doc, err := r.store.Get(ctx, TypeAbout, TypeAbout)
	if err != nil {
		if !errors.Is(err, ErrNotFound) {
			slog.Warn("content store unavailable, serving defaults", "type", TypeAbout, "error", err)
		}
		return r.defaults.About
	}
	var about About
	if err := json.Unmarshal(doc.Payload, &about); err != nil {
		slog.Warn("corrupt content payload, serving defaults", "type", TypeAbout, "error", err)
		return r.defaults.About
	}
	return about
}

// Projects resolves the project cards.
func (r *Resolver) Projects(ctx context.Context) []Project {
	return resolveList(ctx, r.store, TypeProject, r.defaults.Projects)
}

// Experience resolves the work-history entries.
func (r *Resolver) Experience(ctx context.Context) []Experience {
	return resolveList(ctx, r.store, TypeExperience, r.defaults.Experience)
}

// Education resolves the education entries.
func (r *Resolver) Education(ctx context.Context) []Education {
	return resolveList(ctx, r.store, TypeEducation, r.defaults.Education)
}

// Skills resolves the skills grid.
func (r *Resolver) Skills(ctx context.Context) []Skill {
	return resolveList(ctx, r.store, TypeSkill, r.defaults.Skills)
}

// Certifications resolves the certification badges.
func (r *Resolver) Certifications(ctx context.Context) []Certification {
	return resolveList(ctx, r.store, TypeCertification, r.defaults.Certifications)
}

// resolveList lists entityType from the store and decodes each payload
// into T, falling back to defaults when the store is empty, absent, or
// any payload is corrupt.
func resolveList[T any](ctx context.Context, store Store, entityType string, defaults []T) []T {
	if store == nil {
		return defaults
	}
	docs, err := store.List(ctx, entityType)
	if err != nil {
		slog.Warn("content store unavailable, serving defaults", "type", entityType, "error", err)
		return defaults
	}
	if len(docs) == 0 {
		return defaults
	}

	out := make([]T, 0, len(docs))
	for _, doc := range docs {
		var item T
		if err := json.Unmarshal(doc.Payload, &item); err != nil {
			slog.Warn("corrupt content payload, serving defaults", "type", entityType, "id", doc.ID, "error", err)
			return defaults
		}
		out = append(out, item)
	}
	return out
}
