package dashboard

import (
	"github.com/openn02/Tend/internal/wellbeing"
)

// ViewKind tags which dashboard variant a View carries.
type ViewKind int

const (
	ViewIndividual ViewKind = iota
	ViewManager
	ViewPlaceholder
)

// View is the composed dashboard for one role. Exactly one variant field is
// set, matching Kind.
type View struct {
	Kind        ViewKind
	Individual  *IndividualView
	Manager     *ManagerView
	Placeholder *PlaceholderView
}

// SignalCard is one wellbeing dimension on the individual dashboard.
type SignalCard struct {
	Name         string
	Label        string
	Trend        string
	Change       string
	Description  string
	Contributing string
	Nudge        string
	Sources      string
	Heatmap      []HeatmapWeek
}

// HeatmapWeek is one cell of the four week history strip.
type HeatmapWeek struct {
	Week   int
	Status string
}

// TrendPoint is one day of the overall wellbeing line.
type TrendPoint struct {
	Date      string
	Wellbeing int
}

// IndividualView is the private per-user dashboard.
type IndividualView struct {
	WeeklyMessage string
	Insight       string
	InsightAction string
	Signals       []SignalCard
	Trend         []TrendPoint
	TrendSummary  string
	PrivacyNote   string
}

// TeamSummary is the manager hero banner.
type TeamSummary struct {
	Status  string
	Message string
	Insight string
	Action  string
}

// BurnoutAlert is the manager risk callout.
type BurnoutAlert struct {
	Detected       bool
	Message        string
	Recommendation string
}

// TeamMetricCard is one aggregate dimension on the manager dashboard.
type TeamMetricCard struct {
	Name         string
	Label        string
	Trend        string
	Change       string
	Description  string
	Contributors string
	Action       string
	Heatmap      []HeatmapWeek
}

// TeamBreakdownRow is one anonymized row of the per-team table.
type TeamBreakdownRow struct {
	Name       string
	Workload   string
	Sentiment  string
	Engagement string
	Recovery   string
}

// ManagerView is the aggregate team dashboard. It never exposes individual
// level data.
type ManagerView struct {
	Overall     TeamSummary
	Burnout     BurnoutAlert
	Dimensions  []TeamMetricCard
	Breakdown   []TeamBreakdownRow
	PrivacyNote string
}

// PlaceholderView covers roles whose dashboard is not built yet.
type PlaceholderView struct {
	Title   string
	Message string
}

// Compose builds the dashboard for a role. It is total: every role value,
// including unknown ones, yields exactly one view. Roles without a built
// dashboard get an explicit placeholder rather than a crash.
func Compose(role wellbeing.Role) View {
	switch role {
	case wellbeing.RoleEmployee:
		return View{Kind: ViewIndividual, Individual: individualView()}
	case wellbeing.RoleManager:
		return View{Kind: ViewManager, Manager: managerView()}
	case wellbeing.RoleHR:
		return View{Kind: ViewPlaceholder, Placeholder: &PlaceholderView{
			Title:   "HR Dashboard",
			Message: "Organization-wide wellbeing insights coming soon...",
		}}
	default:
		return View{Kind: ViewPlaceholder, Placeholder: &PlaceholderView{
			Title:   "Dashboard",
			Message: "No dashboard is available for this role.",
		}}
	}
}
