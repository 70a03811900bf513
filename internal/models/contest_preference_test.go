package models

import "testing"

func TestContestPreferenceMatches(t *testing.T) {
	div2 := &Contest{
		Platform:        PlatformCodeforces,
		Name:            "Codeforces Round 900 (Div. 2)",
		ContestType:     "div2",
		DurationMinutes: 120,
	}

	tests := []struct {
		name  string
		prefs ContestPreference
		want  bool
	}{
		{
			name:  "empty filter matches everything",
			prefs: ContestPreference{},
			want:  true,
		},
		{
			name:  "duration below minimum",
			prefs: ContestPreference{MinDurationMinutes: 180},
			want:  false,
		},
		{
			name:  "duration above maximum",
			prefs: ContestPreference{MaxDurationMinutes: 90},
			want:  false,
		},
		{
			name:  "duration inside bounds",
			prefs: ContestPreference{MinDurationMinutes: 60, MaxDurationMinutes: 180},
			want:  true,
		},
		{
			name: "type on the allow-list",
			prefs: ContestPreference{
				PlatformTypes: JSONMap{PlatformCodeforces: []interface{}{"div1", "div2"}},
			},
			want: true,
		},
		{
			name: "type not on the allow-list",
			prefs: ContestPreference{
				PlatformTypes: JSONMap{PlatformCodeforces: []interface{}{"div1"}},
			},
			want: false,
		},
		{
			name: "allow-list for another platform is ignored",
			prefs: ContestPreference{
				PlatformTypes: JSONMap{PlatformLeetcode: []interface{}{"weekly"}},
			},
			want: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.prefs.Matches(div2); got != tt.want {
				t.Errorf("Matches() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestAllowedTypesSkipsNonStrings(t *testing.T) {
	prefs := ContestPreference{
		PlatformTypes: JSONMap{
			PlatformCodeforces: []interface{}{"div2", 42, "div3"},
		},
	}

	types := prefs.AllowedTypes(PlatformCodeforces)
	if len(types) != 2 || types[0] != "div2" || types[1] != "div3" {
		t.Errorf("AllowedTypes() = %v, want [div2 div3]", types)
	}
}

func TestNotificationPreferenceTimingFallback(t *testing.T) {
	p := NotificationPreference{NotificationTiming: "fortnight"}
	if got := p.Timing(); got != NotificationTiming1Hour {
		t.Errorf("Timing() = %q, want %q", got, NotificationTiming1Hour)
	}

	p.NotificationTiming = NotificationTiming1Day
	if got := p.Timing(); got != NotificationTiming1Day {
		t.Errorf("Timing() = %q, want %q", got, NotificationTiming1Day)
	}
}

func TestPlatformEnabledUnknownPlatform(t *testing.T) {
	p := DefaultNotificationPreference(1)
	if p.PlatformEnabled("atcoder") {
		t.Error("unknown platform should be disabled")
	}
}
