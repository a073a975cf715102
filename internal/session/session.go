package session

import (
	"sync"

	"github.com/openn02/Tend/internal/wellbeing"
)

// Navigator moves the dashboard to another route. Implementations range from
// a real router to a test recorder.
type Navigator interface {
	Navigate(path string)
}

// Notifier surfaces user-facing messages outside the normal view flow.
type Notifier interface {
	Success(message string)
	Error(message string)
}

// Listener is notified when the session role changes.
type Listener func(role wellbeing.Role)

// Session holds the signed-in user's state. It is injected into every
// consumer rather than read from a global, so tests can substitute their own.
// Before a profile is loaded the role defaults to employee, the least
// privileged role.
type Session struct {
	mu        sync.RWMutex
	store     *Store
	role      wellbeing.Role
	profile   *Profile
	listeners []Listener
}

// Profile is the subset of the user profile the session tracks.
type Profile struct {
	ID                  string
	Email               string
	FullName            string
	Role                wellbeing.Role
	DataConsentGiven    bool
	Preferences         wellbeing.Preferences
	OnboardingCompleted bool
}

// New creates a session with the employee default role.
func New(store *Store) *Session {
	return &Session{
		store: store,
		role:  wellbeing.RoleEmployee,
	}
}

// Store exposes the token store the session owns.
func (s *Session) Store() *Store {
	return s.store
}

// Role returns the current role.
func (s *Session) Role() wellbeing.Role {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.role
}

// Profile returns the loaded profile, or nil before sign-in.
func (s *Session) Profile() *Profile {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.profile
}

// Authenticated reports whether a token is persisted.
func (s *Session) Authenticated() bool {
	_, ok := s.store.Token()
	return ok
}

// OnRoleChange registers a listener fired on every role change.
func (s *Session) OnRoleChange(fn Listener) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.listeners = append(s.listeners, fn)
}

// Begin installs a freshly fetched profile and adopts its role.
func (s *Session) Begin(p Profile) {
	s.mu.Lock()
	s.profile = &p
	changed := s.role != p.Role
	s.role = p.Role
	listeners := s.listeners
	s.mu.Unlock()

	if changed {
		for _, fn := range listeners {
			fn(p.Role)
		}
	}
}

// SetRole switches the active role, for example after the user updates their
// profile. Listeners fire only on an actual change.
func (s *Session) SetRole(role wellbeing.Role) {
	s.mu.Lock()
	if s.role == role {
		s.mu.Unlock()
		return
	}
	s.role = role
	if s.profile != nil {
		s.profile.Role = role
	}
	listeners := s.listeners
	s.mu.Unlock()

	for _, fn := range listeners {
		fn(role)
	}
}

// End clears the persisted token and resets the session to its default
// state.
func (s *Session) End() error {
	err := s.store.Clear()

	s.mu.Lock()
	s.profile = nil
	changed := s.role != wellbeing.RoleEmployee
	s.role = wellbeing.RoleEmployee
	listeners := s.listeners
	s.mu.Unlock()

	if changed {
		for _, fn := range listeners {
			fn(wellbeing.RoleEmployee)
		}
	}
	return err
}
