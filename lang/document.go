package lang

import (
	"iter"
	"slices"
)

// Untyped is reported as the type of a section without an @[type] annotation.
const Untyped = "untyped"

// Section is a named, ordered block of statement lines.
type Section struct {
	Name  string   `json:"name"           yaml:"name"`
	Type  string   `json:"type,omitempty" yaml:"type,omitempty"`
	Lines []string `json:"lines"          yaml:"lines"`
}

// TypeName returns the section type, or [Untyped] if none was annotated.
func (s *Section) TypeName() string {
	if s.Type == "" {
		return Untyped
	}

	return s.Type
}

// Sections is an ordered mapping of section name to [Section].
// Iteration follows the order in which names were first registered.
// The zero value is ready to use.
type Sections struct {
	order  []string
	byName map[string]*Section
}

// Len returns the number of sections.
func (s *Sections) Len() int { return len(s.order) }

// Names returns the section names in registration order.
func (s *Sections) Names() []string { return slices.Clone(s.order) }

// Get returns the section with the given name.
func (s *Sections) Get(name string) (*Section, bool) {
	sec, ok := s.byName[name]

	return sec, ok
}

// All returns an iterator over all sections in registration order.
func (s *Sections) All() iter.Seq[*Section] {
	return func(yield func(*Section) bool) {
		for _, name := range s.order {
			if !yield(s.byName[name]) {
				return
			}
		}
	}
}

// open returns the named section, registering an empty one if needed.
// A pending type annotation is attached when given.
func (s *Sections) open(name, typ string) *Section {
	if s.byName == nil {
		s.byName = make(map[string]*Section)
	}

	sec, ok := s.byName[name]
	if !ok {
		sec = &Section{Name: name}
		s.byName[name] = sec
		s.order = append(s.order, name)
	}

	if typ != "" {
		sec.Type = typ
	}

	return sec
}

// merge appends every section of src into s. Lines of an existing name are
// extended after the lines already present; new names are added with their
// type annotation. It reports, per section, whether it was merged or added.
func (s *Sections) merge(src *Sections, report func(name string, merged bool)) {
	for sec := range src.All() {
		_, exists := s.Get(sec.Name)

		dst := s.open(sec.Name, "")
		if dst.Type == "" {
			dst.Type = sec.Type
		}

		dst.Lines = append(dst.Lines, sec.Lines...)

		if report != nil {
			report(sec.Name, exists)
		}
	}
}
