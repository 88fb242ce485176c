// Package catalogue provides the creature templates available for export.
package catalogue

import (
	"bytes"
	_ "embed"
	"errors"
	"fmt"
	"sync"

	"github.com/Faultbox/animalobj/internal/creature"
)

// Catalogue errors.
var (
	ErrNotFound    = errors.New("template not found")
	ErrNoID        = errors.New("template has no id")
	ErrDuplicateID = errors.New("duplicate template id")
)

// DefaultTemplates is the YAML source of the built-in catalogue.
//
//go:embed templates.yaml
var DefaultTemplates []byte

// Catalogue is a read-only set of templates keyed by ID.
type Catalogue interface {
	// Lookup returns the template with the given ID. Unknown IDs return
	// ErrNotFound; entries that failed validation return a *MalformedError.
	Lookup(id string) (*creature.Template, error)

	// IDs returns every template ID in catalogue order.
	IDs() []string
}

// MalformedError reports a catalogue entry that failed validation.
type MalformedError struct {
	TemplateID string
	Reason     string
}

func (e *MalformedError) Error() string {
	return fmt.Sprintf("template %q is malformed: %s", e.TemplateID, e.Reason)
}

// Is makes MalformedError match creature.ErrMalformedTemplate.
func (e *MalformedError) Is(target error) bool {
	return target == creature.ErrMalformedTemplate
}

// Static is an in-memory catalogue. Templates returned by Lookup are shared
// and must not be modified.
type Static struct {
	order     []string
	templates map[string]*creature.Template
	invalid   map[string]*MalformedError
}

func newStatic() *Static {
	return &Static{
		templates: make(map[string]*creature.Template),
		invalid:   make(map[string]*MalformedError),
	}
}

// New builds a catalogue from templates, keeping their order.
func New(templates ...*creature.Template) (*Static, error) {
	s := newStatic()
	for i, t := range templates {
		if t.ID == "" {
			return nil, fmt.Errorf("template #%d: %w", i+1, ErrNoID)
		}
		if err := s.add(t.ID); err != nil {
			return nil, err
		}
		s.templates[t.ID] = t
	}
	return s, nil
}

func (s *Static) add(id string) error {
	if _, ok := s.templates[id]; ok {
		return fmt.Errorf("%w: %s", ErrDuplicateID, id)
	}
	if _, ok := s.invalid[id]; ok {
		return fmt.Errorf("%w: %s", ErrDuplicateID, id)
	}
	s.order = append(s.order, id)
	return nil
}

// Lookup implements Catalogue.
func (s *Static) Lookup(id string) (*creature.Template, error) {
	if t, ok := s.templates[id]; ok {
		return t, nil
	}
	if err, ok := s.invalid[id]; ok {
		return nil, err
	}
	return nil, fmt.Errorf("%w: %s", ErrNotFound, id)
}

// IDs implements Catalogue.
func (s *Static) IDs() []string {
	ids := make([]string, len(s.order))
	copy(ids, s.order)
	return ids
}

// Len returns the number of entries, including malformed ones.
func (s *Static) Len() int {
	return len(s.order)
}

var loadDefault = sync.OnceValues(func() (*Static, error) {
	return Load(bytes.NewReader(DefaultTemplates))
})

// Default returns the built-in catalogue. It is parsed once and shared.
func Default() (*Static, error) {
	return loadDefault()
}
