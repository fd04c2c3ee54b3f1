package main

import (
	"testing"
	"unicode/utf8"
)

func TestTruncate(t *testing.T) {
	cases := []struct {
		name string
		in   string
		max  int
		want string
	}{
		{"short unchanged", "Elm Street 4", 20, "Elm Street 4"},
		{"exact length unchanged", "Oak Court", 9, "Oak Court"},
		{"long ascii", "a very long building name", 10, "a very ..."},
		{"multibyte name", "Bäckerstraße Wohnhaus über dem Café", 10, "Bäckers..."},
		{"multibyte at the cut", "日本語のドキュメント名がとても長い", 8, "日本語のド..."},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got := truncate(tc.in, tc.max)
			if got != tc.want {
				t.Fatalf("truncate(%q, %d) = %q, want %q", tc.in, tc.max, got, tc.want)
			}
			if !utf8.ValidString(got) {
				t.Fatalf("truncate(%q, %d) produced invalid UTF-8 %q", tc.in, tc.max, got)
			}
		})
	}
}
