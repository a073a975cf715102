package wellbeing

import (
	"encoding/json"
	"testing"
)

func TestParseRole(t *testing.T) {
	cases := []struct {
		in   string
		want Role
		ok   bool
	}{
		{"employee", RoleEmployee, true},
		{"individual", RoleEmployee, true},
		{"Manager", RoleManager, true},
		{"HR", RoleHR, true},
		{"", RoleUnknown, false},
		{"admin", RoleUnknown, false},
	}

	for _, tc := range cases {
		got, ok := ParseRole(tc.in)
		if got != tc.want || ok != tc.ok {
			t.Errorf("ParseRole(%q) = %v, %v; want %v, %v", tc.in, got, ok, tc.want, tc.ok)
		}
	}
}

func TestRoleJSONRoundtrip(t *testing.T) {
	payload, err := json.Marshal(RoleManager)
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	if string(payload) != `"manager"` {
		t.Fatalf("marshal = %s, want \"manager\"", payload)
	}

	var role Role
	if err := json.Unmarshal([]byte(`"individual"`), &role); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if role != RoleEmployee {
		t.Fatalf("unmarshal individual = %v, want employee", role)
	}

	if err := json.Unmarshal([]byte(`"superuser"`), &role); err != nil {
		t.Fatalf("unmarshal unknown: %v", err)
	}
	if role != RoleUnknown {
		t.Fatalf("unknown wire value = %v, want RoleUnknown", role)
	}
}

func TestDefaultPreferences(t *testing.T) {
	emp := DefaultPreferences(RoleEmployee)
	if !emp.WeeklyInsights || !emp.ManagerCheckIns || !emp.TeamTrends {
		t.Fatalf("employee defaults should enable the base toggles: %+v", emp)
	}
	if emp.TeamDigest {
		t.Fatalf("employee defaults should not enable the manager digest toggle")
	}

	mgr := DefaultPreferences(RoleManager)
	if !mgr.TeamDigest {
		t.Fatalf("manager defaults should enable the team digest: %+v", mgr)
	}
}
