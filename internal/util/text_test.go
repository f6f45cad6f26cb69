package util

import "testing"

func TestReverseCommaParts(t *testing.T) {
	cases := []struct {
		name  string
		input string
		want  string
	}{
		{name: "family given", input: "Mustermann, Max", want: "Max Mustermann"},
		{name: "no comma", input: "Max Mustermann", want: "Max Mustermann"},
		{name: "spaced comma", input: "Mustermann ,  Max", want: "Max Mustermann"},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if got := ReverseCommaParts(tc.input); got != tc.want {
				t.Fatalf("got %q want %q", got, tc.want)
			}
		})
	}
}

func TestBreakLongTokens(t *testing.T) {
	got := BreakLongTokens("Müller-Lüdenscheidt kurz", 15)
	if got != `Müller-""Lüdenscheidt kurz` {
		t.Fatalf("got %q", got)
	}
	if BreakLongTokens("kurz-name", 15) != "kurz-name" {
		t.Fatal("short token must stay untouched")
	}
}

func TestBeforeSeparator(t *testing.T) {
	if got := BeforeSeparator("Jane Doe | ACME", "|"); got != "Jane Doe " {
		t.Fatalf("got %q", got)
	}
	if got := BeforeSeparator("Jane Doe", "|"); got != "Jane Doe" {
		t.Fatalf("got %q", got)
	}
}

func TestStripParenthetical(t *testing.T) {
	if got := StripParenthetical("Jane Doe (she/her)"); got != "Jane Doe " {
		t.Fatalf("got %q", got)
	}
}

func TestFirstNonEmpty(t *testing.T) {
	if got := FirstNonEmpty("", "  ", "ACME GmbH", "other"); got != "ACME GmbH" {
		t.Fatalf("got %q", got)
	}
	if got := FirstNonEmpty("", "  "); got != "" {
		t.Fatalf("got %q", got)
	}
}
