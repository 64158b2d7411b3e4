package authors

import "strings"

// Identity is a resolved canonical author.
type Identity struct {
	Name  string
	Color string
}

// Resolver answers identity questions against one mapping snapshot.
// It never changes after construction, so it is safe for concurrent use.
type Resolver struct {
	mapping Mapping
	byEmail map[string]int
}

// NewResolver indexes a copy of the mapping.
func NewResolver(m Mapping) *Resolver {
	r := &Resolver{mapping: m.Clone(), byEmail: make(map[string]int)}
	for i, e := range r.mapping.entries {
		for _, email := range e.Emails {
			key := strings.ToLower(strings.TrimSpace(email))
			if key == "" {
				continue
			}
			if _, ok := r.byEmail[key]; !ok {
				r.byEmail[key] = i
			}
		}
	}
	return r
}

// Mapping returns a copy of the snapshot the resolver was built from.
func (r *Resolver) Mapping() Mapping {
	return r.mapping.Clone()
}

// Resolve returns the first canonical name whose emails contain email, case-insensitively.
func (r *Resolver) Resolve(email string) (Identity, bool) {
	idx, ok := r.byEmail[strings.ToLower(strings.TrimSpace(email))]
	if !ok {
		return Identity{}, false
	}
	e := r.mapping.entries[idx]
	return Identity{Name: e.Name, Color: e.Color}, true
}

// ColorFor returns the mapped color for name, else the palette entry at index.
func (r *Resolver) ColorFor(name string, index int) string {
	if e, ok := r.mapping.Get(name); ok && e.Color != "" {
		return e.Color
	}
	return PaletteColor(index)
}

// IsMapped reports whether name is a canonical name in the table.
func (r *Resolver) IsMapped(name string) bool {
	_, ok := r.mapping.Get(name)
	return ok
}

// SameAuthor reports whether two raw emails belong to the same person: they are
// equal ignoring case, or both resolve to the same canonical name.
func (r *Resolver) SameAuthor(a, b string) bool {
	if strings.EqualFold(strings.TrimSpace(a), strings.TrimSpace(b)) {
		return true
	}
	ia, okA := r.Resolve(a)
	if !okA {
		return false
	}
	ib, okB := r.Resolve(b)
	return okB && ia.Name == ib.Name
}

// DisplayName returns the canonical name for email, or fallback when unmapped.
func (r *Resolver) DisplayName(email, fallback string) string {
	if id, ok := r.Resolve(email); ok {
		return id.Name
	}
	return fallback
}
