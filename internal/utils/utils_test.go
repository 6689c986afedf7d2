package utils

import "testing"

func TestSplitWord(t *testing.T) {
	testCases := []struct {
		input              string
		lead, core, trail string
	}{
		{"cat", "", "cat", ""},
		{"cat.", "", "cat", "."},
		{"(teh),", "(", "teh", "),"},
		{"don't", "", "don't", ""},
		{"'quoted'", "'", "quoted", "'"},
		{"well-known!", "", "well-known", "!"},
		{"...", "", "...", ""},
		{"naïve?", "", "naïve", "?"},
		{"", "", "", ""},
	}

	for _, tc := range testCases {
		lead, core, trail := SplitWord(tc.input)
		if lead != tc.lead || core != tc.core || trail != tc.trail {
			t.Errorf("SplitWord(%q) = (%q, %q, %q), want (%q, %q, %q)",
				tc.input, lead, core, trail, tc.lead, tc.core, tc.trail)
		}
	}
}

func TestWordKey(t *testing.T) {
	if got := WordKey("  Teh, "); got != "Teh" {
		t.Errorf("WordKey() = %q, want %q", got, "Teh")
	}
}

func TestUpperFirst(t *testing.T) {
	testCases := map[string]string{
		"the":   "The",
		"The":   "The",
		"école": "École",
		"1st":   "1st",
		"":      "",
	}
	for in, want := range testCases {
		if got := UpperFirst(in); got != want {
			t.Errorf("UpperFirst(%q) = %q, want %q", in, got, want)
		}
	}
	if !StartsUpper("Teh") || StartsUpper("teh") || StartsUpper("") {
		t.Error("StartsUpper() mismatch")
	}
}

func TestSuggestionFilter(t *testing.T) {
	f := NewSuggestionFilter()
	got := f.Filter([]string{"the", "teh", "The", "the", "", "tea", "teh"})
	want := []string{"the", "teh", "The", "tea"}
	if len(got) != len(want) {
		t.Fatalf("Filter() = %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("Filter() = %v, want %v", got, want)
		}
	}
}

func TestFormatWithCommas(t *testing.T) {
	testCases := map[int]string{
		0:        "0",
		999:      "999",
		1000:     "1,000",
		5000:     "5,000",
		1234567:  "1,234,567",
		-1234567: "-1,234,567",
	}
	for in, want := range testCases {
		if got := FormatWithCommas(in); got != want {
			t.Errorf("FormatWithCommas(%d) = %q, want %q", in, got, want)
		}
	}
}
