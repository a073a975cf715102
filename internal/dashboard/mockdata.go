package dashboard

// Canned datasets rendered until the signal engine ships. Kept in one place
// so swapping in live data later only touches the composer.

func individualView() *IndividualView {
	return &IndividualView{
		WeeklyMessage: "You might be feeling a bit overloaded this week.",
		Insight:       "Overall wellbeing has dipped slightly this week. Prioritize recovery and focus time.",
		InsightAction: "Try this: Block a no-meeting Friday",
		Signals: []SignalCard{
			{
				Name:         "Workload",
				Label:        "Elevated",
				Trend:        "rising",
				Change:       "+14%",
				Description:  "Tracks calendar and comms overload.",
				Contributing: "18 meetings, 3 late nights, high Slack volume",
				Nudge:        "Block 2 hours of focus time on Friday.",
				Sources:      "Calendar, Slack, After-hours activity",
				Heatmap: []HeatmapWeek{
					{Week: 1, Status: "High"},
					{Week: 2, Status: "Elevated"},
					{Week: 3, Status: "Elevated"},
					{Week: 4, Status: "High"},
				},
			},
			{
				Name:         "Sentiment",
				Label:        "Caution",
				Trend:        "declining",
				Change:       "-8%",
				Description:  "Detects emotional tone and mood shifts.",
				Contributing: "Tone dip, fewer emojis, less positive language",
				Nudge:        "Check in with yourself or a teammate.",
				Sources:      "Slack, Email, Emoji/Reactions",
				Heatmap: []HeatmapWeek{
					{Week: 1, Status: "Neutral"},
					{Week: 2, Status: "Neutral"},
					{Week: 3, Status: "Caution"},
					{Week: 4, Status: "Caution"},
				},
			},
			{
				Name:         "Engagement",
				Label:        "Steady",
				Trend:        "stable",
				Change:       "+5%",
				Description:  "Monitors your rhythm and participation.",
				Contributing: "Consistent replies, few missed meetings",
				Nudge:        "Take a break or try an async check-in.",
				Sources:      "Slack, Meetings, Response times",
				Heatmap: []HeatmapWeek{
					{Week: 1, Status: "Steady"},
					{Week: 2, Status: "Steady"},
					{Week: 3, Status: "Steady"},
					{Week: 4, Status: "Steady"},
				},
			},
			{
				Name:         "Recovery",
				Label:        "Low",
				Trend:        "declining",
				Change:       "-12%",
				Description:  "Reflects time away and recharge habits.",
				Contributing: "4 late nights, no PTO, few breaks",
				Nudge:        "Take Friday morning to recover.",
				Sources:      "Calendar, PTO, Digital silence windows",
				Heatmap: []HeatmapWeek{
					{Week: 1, Status: "Moderate"},
					{Week: 2, Status: "Low"},
					{Week: 3, Status: "Low"},
					{Week: 4, Status: "Low"},
				},
			},
		},
		Trend: []TrendPoint{
			{Date: "2024-01-01", Wellbeing: 70},
			{Date: "2024-01-02", Wellbeing: 72},
			{Date: "2024-01-03", Wellbeing: 68},
			{Date: "2024-01-04", Wellbeing: 69},
			{Date: "2024-01-05", Wellbeing: 65},
		},
		TrendSummary: "Your overall wellbeing trend is slightly declining this week.",
		PrivacyNote:  "Your wellbeing insights are private to you.",
	}
}

func managerView() *ManagerView {
	return &ManagerView{
		Overall: TeamSummary{
			Status:  "declining",
			Message: "Team wellbeing declined slightly this week. Tend detected elevated workload and reduced recovery across 3+ team members.",
			Insight: "Consider implementing a no-meeting Wednesday.",
			Action:  "Share this with the team",
		},
		Burnout: BurnoutAlert{
			Detected:       true,
			Message:        "Burnout Risk Detected: Tend has observed persistent high workload + low recovery patterns across the team.",
			Recommendation: "Consider pausing Friday standups and implementing mandatory break times.",
		},
		Dimensions: []TeamMetricCard{
			{
				Name:         "Workload",
				Label:        "Elevated",
				Trend:        "rising",
				Change:       "+14%",
				Description:  "Tracks team calendar and comms overload.",
				Contributors: "More meetings, later Slack hours this week",
				Action:       "Try limiting cross-functional syncs",
				Heatmap: []HeatmapWeek{
					{Week: 1, Status: "High"},
					{Week: 2, Status: "Elevated"},
					{Week: 3, Status: "Elevated"},
					{Week: 4, Status: "High"},
				},
			},
			{
				Name:         "Sentiment",
				Label:        "Neutral",
				Trend:        "stable",
				Change:       "0%",
				Description:  "Detects team emotional tone and mood shifts.",
				Contributors: "Stable team communication patterns",
				Action:       "Continue regular 1:1s",
				Heatmap: []HeatmapWeek{
					{Week: 1, Status: "Neutral"},
					{Week: 2, Status: "Neutral"},
					{Week: 3, Status: "Neutral"},
					{Week: 4, Status: "Neutral"},
				},
			},
			{
				Name:         "Engagement",
				Label:        "Steady",
				Trend:        "stable",
				Change:       "+5%",
				Description:  "Monitors team rhythm and participation.",
				Contributors: "Consistent meeting participation",
				Action:       "Maintain current meeting cadence",
				Heatmap: []HeatmapWeek{
					{Week: 1, Status: "Steady"},
					{Week: 2, Status: "Steady"},
					{Week: 3, Status: "Steady"},
					{Week: 4, Status: "Steady"},
				},
			},
			{
				Name:         "Recovery",
				Label:        "Low",
				Trend:        "declining",
				Change:       "-12%",
				Description:  "Reflects team time away and recharge habits.",
				Contributors: "Fewer breaks, more after-hours work",
				Action:       "Consider implementing mandatory break times",
				Heatmap: []HeatmapWeek{
					{Week: 1, Status: "Moderate"},
					{Week: 2, Status: "Low"},
					{Week: 3, Status: "Low"},
					{Week: 4, Status: "Low"},
				},
			},
		},
		Breakdown: []TeamBreakdownRow{
			{Name: "Design", Workload: "Elevated", Sentiment: "Neutral", Engagement: "Steady", Recovery: "Low"},
			{Name: "Engineering", Workload: "High", Sentiment: "Caution", Engagement: "Steady", Recovery: "Low"},
			{Name: "Product", Workload: "Moderate", Sentiment: "Neutral", Engagement: "Steady", Recovery: "Moderate"},
		},
		PrivacyNote: "These insights reflect overall team trends. Tend does not track or share individual behavior.",
	}
}

// MockNudgeMessage is the canned manager check-in request shown to
// individuals until nudges are delivered live.
const MockNudgeMessage = "Your manager is concerned about team wellbeing trends and has sent a general request for check-ins. Would you like to share your recent wellbeing insights with them for a brief chat?"
