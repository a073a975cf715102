package session

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/openn02/Tend/internal/wellbeing"
)

func newTestStore(t *testing.T) *Store {
	t.Helper()
	return NewStore(filepath.Join(t.TempDir(), "token"))
}

func TestStoreRoundtrip(t *testing.T) {
	store := newTestStore(t)

	if _, ok := store.Token(); ok {
		t.Fatal("fresh store should have no token")
	}

	if err := store.Save("abc123"); err != nil {
		t.Fatalf("save: %v", err)
	}
	token, ok := store.Token()
	if !ok || token != "abc123" {
		t.Fatalf("token = %q, %v; want abc123, true", token, ok)
	}

	if err := store.Clear(); err != nil {
		t.Fatalf("clear: %v", err)
	}
	if _, ok := store.Token(); ok {
		t.Fatal("token should be gone after clear")
	}
	// Clearing twice is fine.
	if err := store.Clear(); err != nil {
		t.Fatalf("second clear: %v", err)
	}
}

func TestStoreRejectsEmptyToken(t *testing.T) {
	store := newTestStore(t)
	if err := store.Save("  "); err == nil {
		t.Fatal("saving a blank token should fail")
	}
}

func TestStoreFilePermissions(t *testing.T) {
	store := newTestStore(t)
	if err := store.Save("secret"); err != nil {
		t.Fatalf("save: %v", err)
	}

	info, err := os.Stat(store.path)
	if err != nil {
		t.Fatalf("stat: %v", err)
	}
	if perm := info.Mode().Perm(); perm != 0o600 {
		t.Fatalf("token file mode = %o, want 600", perm)
	}
}

func TestGuard(t *testing.T) {
	cases := []struct {
		name          string
		path          string
		authenticated bool
		allow         bool
		redirect      string
	}{
		{"anonymous on dashboard", RouteDashboard, false, false, RouteLogin},
		{"anonymous on settings", RouteSettings, false, false, RouteLogin},
		{"anonymous on onboarding", RouteOnboarding, false, false, RouteLogin},
		{"anonymous on login", RouteLogin, false, true, ""},
		{"anonymous on register", RouteRegister, false, true, ""},
		{"signed in on login", RouteLogin, true, false, RouteDashboard},
		{"signed in on register", RouteRegister, true, false, RouteDashboard},
		{"signed in on dashboard", RouteDashboard, true, true, ""},
		{"signed in on settings", RouteSettings, true, true, ""},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got := Guard(tc.path, tc.authenticated)
			if got.Allow != tc.allow || got.RedirectTo != tc.redirect {
				t.Fatalf("Guard(%q, %v) = %+v; want allow=%v redirect=%q",
					tc.path, tc.authenticated, got, tc.allow, tc.redirect)
			}
		})
	}
}

func TestSessionDefaultsToEmployee(t *testing.T) {
	sess := New(newTestStore(t))
	if sess.Role() != wellbeing.RoleEmployee {
		t.Fatalf("default role = %v, want employee", sess.Role())
	}
	if sess.Profile() != nil {
		t.Fatal("fresh session should have no profile")
	}
}

func TestSessionRoleChangeNotifiesListeners(t *testing.T) {
	sess := New(newTestStore(t))

	var seen []wellbeing.Role
	sess.OnRoleChange(func(role wellbeing.Role) {
		seen = append(seen, role)
	})

	sess.SetRole(wellbeing.RoleEmployee) // no change, no event
	sess.SetRole(wellbeing.RoleManager)
	sess.Begin(Profile{ID: "u1", Role: wellbeing.RoleHR})

	if len(seen) != 2 || seen[0] != wellbeing.RoleManager || seen[1] != wellbeing.RoleHR {
		t.Fatalf("listener saw %v, want [manager hr]", seen)
	}
}

func TestSessionEndResetsState(t *testing.T) {
	store := newTestStore(t)
	if err := store.Save("tok"); err != nil {
		t.Fatalf("save: %v", err)
	}

	sess := New(store)
	sess.Begin(Profile{ID: "u1", Role: wellbeing.RoleManager})

	if !sess.Authenticated() {
		t.Fatal("session with stored token should be authenticated")
	}

	if err := sess.End(); err != nil {
		t.Fatalf("end: %v", err)
	}
	if sess.Authenticated() {
		t.Fatal("token should be cleared")
	}
	if sess.Role() != wellbeing.RoleEmployee {
		t.Fatalf("role after end = %v, want employee default", sess.Role())
	}
	if sess.Profile() != nil {
		t.Fatal("profile should be cleared")
	}
}
