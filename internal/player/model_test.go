package player

import "testing"

func TestMaskWallet(t *testing.T) {
	cases := []struct {
		in   string
		want string
	}{
		{"01712345678", "01*******78"},
		{"01711111111", "01*******11"},
		{"0171", "0171"}, // exactly 4: nothing left to mask
		{"017", "017"},
		{"", ""},
	}
	for _, tc := range cases {
		if got := MaskWallet(tc.in); got != tc.want {
			t.Errorf("MaskWallet(%q) = %q, want %q", tc.in, got, tc.want)
		}
	}
}

func TestValidWallet(t *testing.T) {
	valid := []string{"01712345678", "01000000000", "01999999999"}
	for _, w := range valid {
		if !ValidWallet(w) {
			t.Errorf("expected %q to be valid", w)
		}
	}

	invalid := []string{
		"",
		"0171234567",    // too short
		"017123456789",  // too long
		"02712345678",   // wrong prefix
		"01 712345678",  // space
		"0171234567a",   // letter
		"+01712345678",  // sign
	}
	for _, w := range invalid {
		if ValidWallet(w) {
			t.Errorf("expected %q to be invalid", w)
		}
	}
}
