package model

import "testing"

func TestDefaultTimeSlots(t *testing.T) {
	if len(DefaultTimeSlots) != 10 {
		t.Fatalf("expected 10 canonical slots, got %d", len(DefaultTimeSlots))
	}
	if DefaultTimeSlots[0] != "08:00 - 09:00" {
		t.Errorf("expected first slot '08:00 - 09:00', got %q", DefaultTimeSlots[0])
	}
	if DefaultTimeSlots[9] != "17:00 - 18:00" {
		t.Errorf("expected last slot '17:00 - 18:00', got %q", DefaultTimeSlots[9])
	}
}

func TestTimeSlotRange(t *testing.T) {
	tests := []struct {
		name       string
		start, end int
		wantLen    int
		wantFirst  string
	}{
		{"canonical day", 8, 18, 10, "08:00 - 09:00"},
		{"late-start variant", 9, 18, 9, "09:00 - 10:00"},
		{"single slot", 12, 13, 1, "12:00 - 13:00"},
		{"inverted range", 18, 8, 0, ""},
		{"negative start", -1, 10, 0, ""},
		{"end past midnight", 20, 25, 0, ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := TimeSlotRange(tt.start, tt.end)
			if len(got) != tt.wantLen {
				t.Fatalf("expected %d slots, got %d", tt.wantLen, len(got))
			}
			if tt.wantLen > 0 && got[0] != tt.wantFirst {
				t.Errorf("expected first slot %q, got %q", tt.wantFirst, got[0])
			}
		})
	}
}

func TestCatalogContains(t *testing.T) {
	catalog := TimeSlotRange(8, 18)

	if !catalog.Contains("09:00 - 10:00") {
		t.Errorf("expected catalog to contain '09:00 - 10:00'")
	}
	if catalog.Contains("09:00-10:00") {
		t.Errorf("labels are exact strings; spacing variants must not match")
	}
	if catalog.Contains("18:00 - 19:00") {
		t.Errorf("expected slot outside the working day to be rejected")
	}
	if catalog.Contains("") {
		t.Errorf("empty label must not match")
	}
}
