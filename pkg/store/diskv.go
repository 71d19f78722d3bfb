// Package store persists the roster and sessions on disk.
package store

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sort"

	"github.com/google/uuid"
	"github.com/peterbourgon/diskv/v3"

	"tableflip.dev/atas/pkg/session"
	"tableflip.dev/atas/pkg/student"
)

const (
	// rosterKey holds students and sessions together so a save can never
	// leave one without the other.
	rosterKey = "roster"

	// CurrentSchema is written into every document.
	CurrentSchema = "atas/v1"
)

// Persistence defines the persistence contract for the roster and sessions.
type Persistence interface {
	Load(ctx context.Context) ([]student.Student, []*session.Session, error)
	Save(ctx context.Context, students []student.Student, sessions []*session.Session) error
}

// Describer is implemented by stores that can report where they keep data.
type Describer interface {
	BasePath() string
	Keys(ctx context.Context) []string
}

// Config is the part of the configuration the store reads.
type Config interface {
	BasePath() string
}

// Load creates a Persistence backed by diskv under cfg's base path. Writes go
// through a temp file next to it and a rename.
func Load(cfg Config) (Persistence, error) {
	if cfg == nil {
		return nil, errors.New("store: config required")
	}
	basePath := cfg.BasePath()
	if basePath == "" {
		return nil, errors.New("store: base path unknown")
	}
	return &persistence{d: diskv.New(diskv.Options{
		BasePath:     basePath,
		TempDir:      basePath + ".tmp",
		CacheSizeMax: 1024 * 1024, // 1MB
	}), basePath: basePath}, nil
}

type persistence struct {
	d        *diskv.Diskv
	basePath string
}

type sessionRecord struct {
	Name       string                            `json:"name"`
	Date       string                            `json:"date"`
	Attributes map[uuid.UUID]session.Attributes `json:"attributes"`
}

type rosterDocument struct {
	Schema   string            `json:"schema"`
	Students []student.Student `json:"students"`
	Sessions []sessionRecord   `json:"sessions"`
}

func (p *persistence) Load(ctx context.Context) ([]student.Student, []*session.Session, error) {
	if err := ctx.Err(); err != nil {
		return nil, nil, err
	}
	var doc rosterDocument
	if err := p.read(rosterKey, &doc); err != nil {
		return nil, nil, err
	}

	sessions := make([]*session.Session, 0, len(doc.Sessions))
	for _, r := range doc.Sessions {
		name, err := session.ParseName(r.Name)
		if err != nil {
			return nil, nil, fmt.Errorf("store: session %q: %w", r.Name, err)
		}
		date, err := session.ParseDate(r.Date)
		if err != nil {
			return nil, nil, fmt.Errorf("store: session %q: %w", r.Name, err)
		}
		sessions = append(sessions, session.Restore(name, date, r.Attributes))
	}
	return doc.Students, sessions, nil
}

func (p *persistence) Save(ctx context.Context, students []student.Student, sessions []*session.Session) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	doc := rosterDocument{
		Schema:   CurrentSchema,
		Students: students,
		Sessions: make([]sessionRecord, 0, len(sessions)),
	}
	if doc.Students == nil {
		doc.Students = []student.Student{}
	}
	for _, s := range sessions {
		doc.Sessions = append(doc.Sessions, sessionRecord{
			Name:       string(s.Name),
			Date:       s.Date.String(),
			Attributes: s.Attributes(),
		})
	}
	return p.write(rosterKey, doc)
}

func (p *persistence) read(key string, v interface{}) error {
	if !p.d.Has(key) {
		return nil
	}
	val, err := p.d.Read(key)
	if err != nil {
		return fmt.Errorf("store: read %s: %w", key, err)
	}
	if err := json.Unmarshal(val, v); err != nil {
		return fmt.Errorf("store: decode %s: %w", key, err)
	}
	return nil
}

func (p *persistence) write(key string, v interface{}) error {
	data, err := json.Marshal(v)
	if err != nil {
		return fmt.Errorf("store: encode %s: %w", key, err)
	}
	if err := p.d.Write(key, data); err != nil {
		return fmt.Errorf("store: write %s: %w", key, err)
	}
	return nil
}

func (p *persistence) BasePath() string {
	return p.basePath
}

func (p *persistence) Keys(ctx context.Context) []string {
	var keys []string
	for key := range p.d.Keys(ctx.Done()) {
		keys = append(keys, key)
	}
	sort.Strings(keys)
	return keys
}
