package pipeline

import "testing"

func TestTexEscape(t *testing.T) {
	cases := []struct {
		name  string
		input string
		want  string
	}{
		{name: "ampersand", input: "GIS & Friends", want: `GIS \& Friends`},
		{name: "percent", input: "100%", want: `100\%`},
		{name: "underscore", input: "osm_name", want: `osm\_name`},
		{name: "hash dollar", input: "#1 $5", want: `\#1 \$5`},
		{name: "braces", input: "{x}", want: `\{x\}`},
		{name: "tilde", input: "~user", want: `\textasciitilde{}user`},
		{name: "caret", input: "x^2", want: `x\^{}2`},
		{name: "backslash", input: `a\b`, want: `a\textbackslash{}b`},
		{name: "angle brackets", input: "<br>", want: `\textless{}br\textgreater{}`},
		{name: "plain", input: "Max Mustermann", want: "Max Mustermann"},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if got := TexEscape(tc.input); got != tc.want {
				t.Fatalf("got %q want %q", got, tc.want)
			}
		})
	}
}

// Each designated character is substituted exactly once in a single pass; the
// backslashes introduced by one substitution are never escaped again.
func TestTexEscapeSinglePass(t *testing.T) {
	got := TexEscape(`&%$#_{}~^\<>`)
	want := `\&\%\$\#\_\{\}\textasciitilde{}\^{}\textbackslash{}\textless{}\textgreater{}`
	if got != want {
		t.Fatalf("got %q want %q", got, want)
	}
}
