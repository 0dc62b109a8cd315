package models

import "testing"

func TestParseTimeOfDay(t *testing.T) {
	cases := []struct {
		input   string
		want    TimeOfDay
		wantErr bool
	}{
		{"09:00", 540, false},
		{"09:30:00", 570, false},
		{"00:00", 0, false},
		{"23:59", 1439, false},
		{" 10:15 ", 615, false},
		{"24:00", 0, true},
		{"09:60", 0, true},
		{"09:30:15", 0, true},
		{"9am", 0, true},
		{"", 0, true},
	}

	for _, tc := range cases {
		got, err := ParseTimeOfDay(tc.input)
		if tc.wantErr {
			if err == nil {
				t.Errorf("ParseTimeOfDay(%q): expected error, got %v", tc.input, got)
			}
			continue
		}
		if err != nil {
			t.Errorf("ParseTimeOfDay(%q): unexpected error %v", tc.input, err)
			continue
		}
		if got != tc.want {
			t.Errorf("ParseTimeOfDay(%q) = %d, want %d", tc.input, got, tc.want)
		}
	}
}

func TestTimeOfDayString(t *testing.T) {
	if got := TimeOfDay(540).String(); got != "09:00" {
		t.Errorf("expected 09:00, got %s", got)
	}
	if got := TimeOfDay(MinutesPerDay).String(); got != "24:00" {
		t.Errorf("expected 24:00, got %s", got)
	}
}

func TestTimeOfDayJSONRoundTrip(t *testing.T) {
	value := TimeOfDay(615)
	data, err := value.MarshalJSON()
	if err != nil {
		t.Fatalf("MarshalJSON: %v", err)
	}
	if string(data) != `"10:15"` {
		t.Fatalf(`expected "10:15", got %s`, data)
	}

	var parsed TimeOfDay
	if err := parsed.UnmarshalJSON(data); err != nil {
		t.Fatalf("UnmarshalJSON: %v", err)
	}
	if parsed != value {
		t.Fatalf("expected %d after round trip, got %d", value, parsed)
	}
}
