package util

import "testing"

func TestTrimQuotes(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected string
	}{
		{"empty string", "", ""},
		{"no quotes", "hello", "hello"},
		{"double quoted", `"hello"`, "hello"},
		{"quotes in middle", `he"llo`, `he"llo`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := TrimQuotes(tt.input)
			if result != tt.expected {
				t.Errorf("TrimQuotes(%q) = %q, want %q", tt.input, result, tt.expected)
			}
		})
	}
}

func TestStripWord(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		word     string
		expected string
	}{
		{"ammo suffix", "LRM 20 Ammo", "Ammo", "LRM 20"},
		{"bay suffix", "Laser Bay", "Bay", "Laser"},
		{"capital bay", "Capital Missile Bay", "Bay", "Capital Missile"},
		{"no suffix", "PPC", "Bay", "PPC"},
		{"no leading space", "Bayonet", "Bay", "Bayonet"},
		{"repeated", "AC/10 Ammo Ammo", "Ammo", "AC/10"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := StripWord(tt.input, tt.word)
			if result != tt.expected {
				t.Errorf("StripWord(%q, %q) = %q, want %q", tt.input, tt.word, result, tt.expected)
			}
		})
	}
}

func TestStripNotes(t *testing.T) {
	if got := StripNotes("200 Fusion Engine [Clan]"); got != "200 Fusion Engine" {
		t.Errorf("StripNotes = %q", got)
	}
	if got := StripNotes("100 ICE Engine"); got != "100 ICE Engine" {
		t.Errorf("StripNotes = %q", got)
	}
}

func TestJoinArcNames(t *testing.T) {
	tests := []struct {
		input    []string
		expected string
	}{
		{[]string{"Nose"}, "Nose"},
		{[]string{"Left Wing", "Right Wing"}, "Left Wing/Right Wing"},
		{[]string{"Left Fwd", "Right Fwd"}, "Left/Right Fwd"},
		{[]string{"Left Aft", "Right Aft"}, "Left/Right Aft"},
	}

	for _, tt := range tests {
		if got := JoinArcNames(tt.input); got != tt.expected {
			t.Errorf("JoinArcNames(%v) = %q, want %q", tt.input, got, tt.expected)
		}
	}
}

func TestSafeFileName(t *testing.T) {
	if got := SafeFileName("Sabre SB-27: Refit"); got != "Sabre_SB-27__Refit" {
		t.Errorf("SafeFileName = %q", got)
	}
}

func TestJoinLocationNames(t *testing.T) {
	tests := []struct {
		input    []string
		expected string
	}{
		{nil, ""},
		{[]string{"Nose"}, "Nose"},
		{[]string{"Right Wing", "Left Wing"}, "Right/Left Wing"},
		{[]string{"Nose", "Aft"}, "Nose/Aft"},
		{[]string{"Right Wing", "Aft"}, "Right Wing/Aft"},
	}

	for _, tt := range tests {
		if got := JoinLocationNames(tt.input); got != tt.expected {
			t.Errorf("JoinLocationNames(%v) = %q, want %q", tt.input, got, tt.expected)
		}
	}
}
