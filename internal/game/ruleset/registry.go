package ruleset

import "go.uber.org/zap"

// DefaultClassID is the fallback used when an unknown class id is requested.
const DefaultClassID = "warrior"

// Registry holds the loaded Classes and Realms for one engine instance.
type Registry struct {
	classes map[string]*Class
	realms  []*Realm
	logger  *zap.Logger
}

// NewRegistry builds a Registry from the given content.
//
// Precondition: logger must be non-nil.
// Postcondition: Returns a non-nil Registry ready for lookups.
func NewRegistry(classes []*Class, realms []*Realm, logger *zap.Logger) *Registry {
	byID := make(map[string]*Class, len(classes))
	for _, c := range classes {
		byID[c.ID] = c
	}
	return &Registry{classes: byID, realms: realms, logger: logger}
}

// Class returns the class for id, or (nil, false) if not found.
func (r *Registry) Class(id string) (*Class, bool) {
	c, ok := r.classes[id]
	return c, ok
}

// ClassOrDefault returns the class for id, falling back to DefaultClassID
// with a logged warning when id is unknown. Class data is static, so the
// fallback should be unreachable in correct builds.
//
// Precondition: the default class must be registered.
// Postcondition: Returns a non-nil Class.
func (r *Registry) ClassOrDefault(id string) *Class {
	if c, ok := r.classes[id]; ok {
		return c
	}
	r.logger.Warn("unknown class id, falling back to default",
		zap.String("class_id", id),
		zap.String("fallback", DefaultClassID))
	return r.classes[DefaultClassID]
}

// Classes returns a snapshot slice of all registered classes.
func (r *Registry) Classes() []*Class {
	out := make([]*Class, 0, len(r.classes))
	for _, c := range r.classes {
		out = append(out, c)
	}
	return out
}

// Realms returns the realm catalog.
func (r *Registry) Realms() []*Realm {
	return r.realms
}

// Realm returns the realm for id, or (nil, false) if not found.
func (r *Registry) Realm(id string) (*Realm, bool) {
	for _, realm := range r.realms {
		if realm.ID == id {
			return realm, true
		}
	}
	return nil, false
}
