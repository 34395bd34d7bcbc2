package assets

import "sync"

// Script is a registered client script.
type Script struct {
	Handle       string   `json:"handle"`
	Src          string   `json:"src"`
	Dependencies []string `json:"dependencies"`
	Version      string   `json:"version"`
	InFooter     bool     `json:"in_footer"`

	// Translations, when set, point the script at a JSON translation domain.
	TextDomain       string `json:"text_domain,omitempty"`
	TranslationsPath string `json:"translations_path,omitempty"`
}

// Registry holds scripts by handle. Registering an existing handle is a
// no-op, so repeated registration is idempotent.
type Registry struct {
	mu      sync.RWMutex
	scripts map[string]Script
	order   []string
}

// NewRegistry returns an empty registry.
func NewRegistry() *Registry {
	return &Registry{scripts: make(map[string]Script)}
}

// Register adds s. It returns false if the handle was already registered,
// in which case the existing script is kept.
func (r *Registry) Register(s Script) bool {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.scripts[s.Handle]; exists {
		return false
	}
	if s.Dependencies == nil {
		s.Dependencies = []string{}
	}
	r.scripts[s.Handle] = s
	r.order = append(r.order, s.Handle)
	return true
}

// SetTranslations attaches a text domain to a registered script.
// It returns false if the handle is unknown.
func (r *Registry) SetTranslations(handle, domain, path string) bool {
	r.mu.Lock()
	defer r.mu.Unlock()

	s, ok := r.scripts[handle]
	if !ok {
		return false
	}
	s.TextDomain = domain
	s.TranslationsPath = path
	r.scripts[handle] = s
	return true
}

// Get returns the script registered under handle.
func (r *Registry) Get(handle string) (Script, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	s, ok := r.scripts[handle]
	return s, ok
}

// All returns the registered scripts in registration order.
func (r *Registry) All() []Script {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]Script, 0, len(r.order))
	for _, h := range r.order {
		out = append(out, r.scripts[h])
	}
	return out
}

// Len returns the number of registered scripts.
func (r *Registry) Len() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.order)
}
