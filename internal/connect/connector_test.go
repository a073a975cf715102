package connect

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/rs/zerolog"

	"github.com/openn02/Tend/internal/client"
)

type stubAPI struct {
	mu        sync.Mutex
	statuses  map[string]client.IntegrationStatus
	statusErr map[string]error
	authURL   string
	authErr   error
	delay     time.Duration
}

func (s *stubAPI) IntegrationStatus(ctx context.Context, provider string) (client.IntegrationStatus, error) {
	if s.delay > 0 {
		select {
		case <-time.After(s.delay):
		case <-ctx.Done():
			return client.IntegrationStatus{}, ctx.Err()
		}
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.statusErr[provider]; err != nil {
		return client.IntegrationStatus{}, err
	}
	return s.statuses[provider], nil
}

func (s *stubAPI) IntegrationAuthURL(ctx context.Context, provider string) (string, error) {
	if s.delay > 0 {
		select {
		case <-time.After(s.delay):
		case <-ctx.Done():
			return "", ctx.Err()
		}
	}
	if s.authErr != nil {
		return "", s.authErr
	}
	return s.authURL, nil
}

type recordingNav struct {
	mu    sync.Mutex
	paths []string
}

func (n *recordingNav) Navigate(path string) {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.paths = append(n.paths, path)
}

func (n *recordingNav) all() []string {
	n.mu.Lock()
	defer n.mu.Unlock()
	return append([]string(nil), n.paths...)
}

func TestStatusesDegradesFailedProviders(t *testing.T) {
	lastSync := time.Now().UTC()
	api := &stubAPI{
		statuses: map[string]client.IntegrationStatus{
			"slack": {Connected: true, LastSync: &lastSync},
			"zoom":  {Connected: false},
		},
		statusErr: map[string]error{
			"google": errors.New("upstream down"),
		},
	}
	c := New(api, &recordingNav{}, zerolog.Nop())

	statuses, err := c.Statuses(context.Background(), []string{"slack", "google", "zoom"})
	if err != nil {
		t.Fatalf("statuses: %v", err)
	}

	if !statuses["slack"].Connected {
		t.Error("slack should be connected")
	}
	if statuses["google"].Connected {
		t.Error("failed provider should degrade to disconnected")
	}
	if statuses["zoom"].Connected {
		t.Error("zoom should be disconnected")
	}

	if got, ok := c.Status("google"); !ok || got.Connected {
		t.Error("degraded status should be recorded")
	}
}

func TestStatusesDiscardsAfterCancel(t *testing.T) {
	api := &stubAPI{
		statuses: map[string]client.IntegrationStatus{"slack": {Connected: true}},
		delay:    50 * time.Millisecond,
	}
	c := New(api, &recordingNav{}, zerolog.Nop())

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	if _, err := c.Statuses(ctx, []string{"slack"}); err == nil {
		t.Fatal("canceled fetch should return an error")
	}
	if _, ok := c.Status("slack"); ok {
		t.Fatal("no state should be recorded after cancellation")
	}
}

func TestConnectNavigatesToAuthURL(t *testing.T) {
	api := &stubAPI{authURL: "https://slack.com/oauth/v2/authorize?client_id=x"}
	nav := &recordingNav{}
	c := New(api, nav, zerolog.Nop())

	if err := c.Connect(context.Background(), "slack"); err != nil {
		t.Fatalf("connect: %v", err)
	}

	paths := nav.all()
	if len(paths) != 1 || paths[0] != api.authURL {
		t.Fatalf("navigations = %v, want the auth url", paths)
	}
	if c.Busy("slack") {
		t.Fatal("busy flag should clear after connect")
	}
}

func TestConnectClearsBusyOnFailure(t *testing.T) {
	api := &stubAPI{authErr: errors.New("boom")}
	nav := &recordingNav{}
	c := New(api, nav, zerolog.Nop())

	if err := c.Connect(context.Background(), "google"); err == nil {
		t.Fatal("connect should surface the error")
	}
	if c.Busy("google") {
		t.Fatal("busy flag should clear after a failure")
	}
	if len(nav.all()) != 0 {
		t.Fatal("no navigation should happen on failure")
	}
}

func TestConnectDiscardsLateAuthURL(t *testing.T) {
	api := &stubAPI{authURL: "https://zoom.us/oauth/authorize", delay: 50 * time.Millisecond}
	nav := &recordingNav{}
	c := New(api, nav, zerolog.Nop())

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Millisecond)
	defer cancel()

	if err := c.Connect(ctx, "zoom"); !errors.Is(err, context.DeadlineExceeded) {
		t.Fatalf("connect = %v, want deadline exceeded", err)
	}
	if len(nav.all()) != 0 {
		t.Fatal("late response must not trigger navigation")
	}
	if c.Busy("zoom") {
		t.Fatal("busy flag should clear after cancellation")
	}
}
