package classify

import "testing"

func TestParseMode(t *testing.T) {
	tests := []struct {
		in      string
		want    Mode
		wantErr bool
	}{
		{"1", Duplicates, false},
		{"7", MissingInX, false},
		{"temp", Temp, false},
		{" Same-Name ", SameName, false},
		{"bad-character", BadCharacterName, false},
		{"0", 0, true},
		{"8", 0, true},
		{"dupes", 0, true},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := ParseMode(tt.in)
			if (err != nil) != tt.wantErr {
				t.Fatalf("ParseMode(%q) error = %v, wantErr %v", tt.in, err, tt.wantErr)
			}
			if got != tt.want {
				t.Errorf("ParseMode(%q) = %v, want %v", tt.in, got, tt.want)
			}
		})
	}
}

func TestModesRoundTrip(t *testing.T) {
	if len(Modes()) != 7 {
		t.Fatalf("Modes() has %d entries, want 7", len(Modes()))
	}
	for i, m := range Modes() {
		if int(m) != i+1 {
			t.Errorf("mode %v has number %d, want %d", m, int(m), i+1)
		}
		parsed, err := ParseMode(m.String())
		if err != nil || parsed != m {
			t.Errorf("ParseMode(%q) = %v, %v", m.String(), parsed, err)
		}
		if m.Title() == "UNKNOWN_MODE" {
			t.Errorf("mode %d has no title", int(m))
		}
	}
}
