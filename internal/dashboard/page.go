package dashboard

import (
	"github.com/openn02/Tend/internal/wellbeing"
)

// Page is one rendered dashboard: the role view plus the manager check-in
// request. The header panel and the inline banner both read the same
// NudgeRequest, never copies of it.
type Page struct {
	View  View
	Nudge *NudgeRequest
}

// NewPage composes the page for a role. The check-in request is only
// surfaced on the individual dashboard.
func NewPage(role wellbeing.Role) *Page {
	view := Compose(role)
	detected := view.Kind == ViewIndividual
	return &Page{
		View:  view,
		Nudge: NewNudgeRequest(detected, MockNudgeMessage),
	}
}

// HeaderBadge is the notification state the header panel renders.
type HeaderBadge struct {
	PendingCount int
	Message      string
}

// Header projects the shared request into the header panel.
func (p *Page) Header() HeaderBadge {
	return HeaderBadge{
		PendingCount: p.Nudge.PendingCount(),
		Message:      p.Nudge.Message(),
	}
}

// Banner projects the shared request into the inline banner. The banner is
// only shown while the request is pending.
type Banner struct {
	Visible bool
	Message string
}

// Banner returns the inline banner state.
func (p *Page) Banner() Banner {
	return Banner{
		Visible: p.Nudge.Pending(),
		Message: p.Nudge.Message(),
	}
}
