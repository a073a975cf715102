package onboarding

import (
	"context"
	"errors"
	"fmt"

	"github.com/openn02/Tend/internal/client"
	"github.com/openn02/Tend/internal/session"
	"github.com/openn02/Tend/internal/wellbeing"
)

// Step is a wizard position. The wizard only moves forward one step at a
// time (or back one), so a raw index can never jump the flow.
type Step int

const (
	StepRole Step = iota
	StepConsent
	StepPreferences
	StepDone
)

func (s Step) String() string {
	switch s {
	case StepRole:
		return "role"
	case StepConsent:
		return "consent"
	case StepPreferences:
		return "preferences"
	case StepDone:
		return "done"
	default:
		return fmt.Sprintf("step(%d)", int(s))
	}
}

var (
	// ErrConsentRequired means the user tried to move past, or submit
	// without, the consent checkbox.
	ErrConsentRequired = errors.New("onboarding: data consent is required")

	// ErrWrongStep means an action was invoked from a step it does not
	// belong to.
	ErrWrongStep = errors.New("onboarding: action not valid at this step")
)

// profileUpdater is the one API call the wizard needs.
type profileUpdater interface {
	UpdateMe(ctx context.Context, update client.ProfileUpdate) (client.Profile, error)
}

// Wizard is the three step onboarding flow: pick a role, grant consent,
// tune notification preferences, then submit everything in one update.
// A failed submit leaves the collected answers untouched so the user can
// retry.
type Wizard struct {
	api    profileUpdater
	sess   *session.Session
	nav    session.Navigator
	notify session.Notifier

	step       Step
	role       wellbeing.Role
	consent    bool
	prefs      wellbeing.Preferences
	submitting bool
}

// NewWizard starts at the role step with the employee default.
func NewWizard(api profileUpdater, sess *session.Session, nav session.Navigator, notify session.Notifier) *Wizard {
	return &Wizard{
		api:    api,
		sess:   sess,
		nav:    nav,
		notify: notify,
		step:   StepRole,
		role:   wellbeing.RoleEmployee,
		prefs:  wellbeing.DefaultPreferences(wellbeing.RoleEmployee),
	}
}

// Step returns the current position.
func (w *Wizard) Step() Step { return w.step }

// Role returns the currently selected role.
func (w *Wizard) Role() wellbeing.Role { return w.role }

// Consent returns the consent checkbox state.
func (w *Wizard) Consent() bool { return w.consent }

// Preferences returns the working preference set.
func (w *Wizard) Preferences() wellbeing.Preferences { return w.prefs }

// ChooseRole records the role and advances to the consent step. Changing
// role resets the preferences to that role's defaults so a manager-only
// toggle never leaks into an employee profile.
func (w *Wizard) ChooseRole(role wellbeing.Role) error {
	if w.step != StepRole {
		return ErrWrongStep
	}
	if role == wellbeing.RoleUnknown {
		return fmt.Errorf("onboarding: invalid role")
	}
	w.role = role
	w.prefs = wellbeing.DefaultPreferences(role)
	w.step = StepConsent
	return nil
}

// SetConsent records the checkbox state without advancing.
func (w *Wizard) SetConsent(given bool) error {
	if w.step != StepConsent {
		return ErrWrongStep
	}
	w.consent = given
	return nil
}

// Next advances from the consent step. It refuses to move forward until
// consent is given.
func (w *Wizard) Next() error {
	if w.step != StepConsent {
		return ErrWrongStep
	}
	if !w.consent {
		return ErrConsentRequired
	}
	w.step = StepPreferences
	return nil
}

// Back moves one step towards the start. Collected answers are kept.
func (w *Wizard) Back() error {
	switch w.step {
	case StepConsent:
		w.step = StepRole
	case StepPreferences:
		w.step = StepConsent
	default:
		return ErrWrongStep
	}
	return nil
}

// SetPreferences replaces the working preference set on the final step.
func (w *Wizard) SetPreferences(prefs wellbeing.Preferences) error {
	if w.step != StepPreferences {
		return ErrWrongStep
	}
	w.prefs = prefs
	return nil
}

// CanSubmit reports whether the wizard is ready for Submit.
func (w *Wizard) CanSubmit() bool {
	return w.step == StepPreferences && w.consent && !w.submitting
}

// Submitting reports whether a submit is in flight.
func (w *Wizard) Submitting() bool { return w.submitting }

// Submit sends the collected answers as one profile update and routes to
// the dashboard. Without consent it fails before any network call. On API
// failure the wizard stays on the preferences step with all answers intact.
func (w *Wizard) Submit(ctx context.Context) error {
	if w.step != StepPreferences {
		return ErrWrongStep
	}
	if !w.consent {
		return ErrConsentRequired
	}
	if w.submitting {
		return nil
	}

	w.submitting = true
	defer func() { w.submitting = false }()

	role := w.role
	consent := true
	completed := true
	prefs := w.prefs

	profile, err := w.api.UpdateMe(ctx, client.ProfileUpdate{
		Role:                &role,
		DataConsentGiven:    &consent,
		Preferences:         &prefs,
		OnboardingCompleted: &completed,
	})
	if err != nil {
		if ctx.Err() != nil {
			return ctx.Err()
		}
		w.notify.Error("Could not finish onboarding. Please try again.")
		return err
	}
	if ctx.Err() != nil {
		return ctx.Err()
	}

	w.step = StepDone
	w.sess.Begin(session.Profile{
		ID:                  profile.ID,
		Email:               profile.Email,
		FullName:            profile.FullName,
		Role:                profile.Role,
		DataConsentGiven:    profile.DataConsentGiven,
		Preferences:         profile.Preferences,
		OnboardingCompleted: profile.OnboardingCompleted,
	})
	w.nav.Navigate(session.RouteDashboard)
	return nil
}
