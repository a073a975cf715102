package wellbeing

// Preferences are the notification opt-ins collected during onboarding and
// editable later from settings.
type Preferences struct {
	WeeklyInsights  bool `json:"weekly_insights"`
	ManagerCheckIns bool `json:"manager_check_ins"`
	TeamTrends      bool `json:"team_trends"`
	TeamDigest      bool `json:"team_digest,omitempty"`
}

// DefaultPreferences returns the preference set offered for a role. Managers
// additionally get the weekly team digest.
func DefaultPreferences(role Role) Preferences {
	p := Preferences{
		WeeklyInsights:  true,
		ManagerCheckIns: true,
		TeamTrends:      true,
	}
	if role == RoleManager {
		p.TeamDigest = true
	}
	return p
}
