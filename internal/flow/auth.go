package flow

import (
	"context"
	"errors"

	"github.com/rs/zerolog"

	"github.com/openn02/Tend/internal/client"
	"github.com/openn02/Tend/internal/session"
)

// ErrBusy is returned when a submit arrives while another one is still in
// flight.
var ErrBusy = errors.New("flow: request already in flight")

// Auth drives the login and registration flows. A single in-flight flag
// keeps double submits from firing duplicate requests, and the flag is
// cleared on every exit path so the forms never wedge.
type Auth struct {
	api     *client.Client
	session *session.Session
	nav     session.Navigator
	notify  session.Notifier
	logger  zerolog.Logger

	busy chan struct{}
}

// NewAuth wires the auth flow.
func NewAuth(api *client.Client, sess *session.Session, nav session.Navigator, notify session.Notifier, logger zerolog.Logger) *Auth {
	a := &Auth{
		api:     api,
		session: sess,
		nav:     nav,
		notify:  notify,
		logger:  logger,
		busy:    make(chan struct{}, 1),
	}
	a.busy <- struct{}{}
	return a
}

// Busy reports whether a submit is in flight, for disabling the form button.
func (a *Auth) Busy() bool {
	select {
	case token := <-a.busy:
		a.busy <- token
		return false
	default:
		return true
	}
}

func (a *Auth) acquire() bool {
	select {
	case <-a.busy:
		return true
	default:
		return false
	}
}

func (a *Auth) release() {
	a.busy <- struct{}{}
}

// Login authenticates, persists the token and routes by consent state:
// users who have not given data consent land on onboarding, everyone else
// on the dashboard. On failure nothing is persisted and the user stays on
// the login page.
func (a *Auth) Login(ctx context.Context, email, password string) error {
	if !a.acquire() {
		return ErrBusy
	}
	defer a.release()

	pair, err := a.api.Login(ctx, email, password)
	if err != nil {
		if ctx.Err() != nil {
			return ctx.Err()
		}
		a.logger.Warn().Err(err).Str("email", email).Msg("login failed")
		a.notify.Error(loginErrorMessage(err))
		return err
	}
	if ctx.Err() != nil {
		return ctx.Err()
	}

	if err := a.session.Store().Save(pair.AccessToken); err != nil {
		a.notify.Error("Could not save your session. Please try again.")
		return err
	}

	profile, err := a.api.Me(ctx)
	if err != nil {
		if ctx.Err() != nil {
			return ctx.Err()
		}
		// Token is valid; fall through to the dashboard and let it refetch.
		a.logger.Warn().Err(err).Msg("profile fetch after login failed")
		a.nav.Navigate(session.RouteDashboard)
		return nil
	}

	a.session.Begin(session.Profile{
		ID:                  profile.ID,
		Email:               profile.Email,
		FullName:            profile.FullName,
		Role:                profile.Role,
		DataConsentGiven:    profile.DataConsentGiven,
		Preferences:         profile.Preferences,
		OnboardingCompleted: profile.OnboardingCompleted,
	})

	if !profile.DataConsentGiven {
		a.nav.Navigate(session.RouteOnboarding)
	} else {
		a.nav.Navigate(session.RouteDashboard)
	}
	return nil
}

// Register creates the account and sends the user to the login page; it
// never signs them in directly.
func (a *Auth) Register(ctx context.Context, fullName, email, password, role string) error {
	if !a.acquire() {
		return ErrBusy
	}
	defer a.release()

	err := a.api.Register(ctx, client.RegisterRequest{
		Email:    email,
		Password: password,
		FullName: fullName,
		Role:     role,
	})
	if err != nil {
		if ctx.Err() != nil {
			return ctx.Err()
		}
		a.logger.Warn().Err(err).Str("email", email).Msg("registration failed")
		a.notify.Error(registerErrorMessage(err))
		return err
	}
	if ctx.Err() != nil {
		return ctx.Err()
	}

	a.notify.Success("Account created. Please sign in.")
	a.nav.Navigate(session.RouteLogin)
	return nil
}

// Logout clears the local session and returns to the login page.
func (a *Auth) Logout() {
	if err := a.session.End(); err != nil {
		a.logger.Warn().Err(err).Msg("clearing session failed")
	}
	a.nav.Navigate(session.RouteLogin)
}

func loginErrorMessage(err error) string {
	var apiErr *client.APIError
	if errors.As(err, &apiErr) && apiErr.Detail != "" {
		return apiErr.Detail
	}
	return "Login failed. Please try again."
}

func registerErrorMessage(err error) string {
	var apiErr *client.APIError
	if errors.As(err, &apiErr) && apiErr.Detail != "" {
		return apiErr.Detail
	}
	return "Registration failed. Please try again."
}
