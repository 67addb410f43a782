package repl

import (
	"slices"
	"testing"

	"github.com/ardnew/devrc/host"
	"github.com/ardnew/devrc/lang"
)

func TestWordBounds(t *testing.T) {
	tests := []struct {
		name      string
		input     string
		cursor    int
		wantWord  string
		wantStart int
		wantEnd   int
	}{
		{"simple", "foo", 3, "foo", 0, 3},
		{"dotted", "env.name", 8, "env.name", 0, 8},
		{"flag", ".devrc -crf", 11, "-crf", 7, 11},
		{"keyword with dot", ".dev", 4, ".dev", 0, 4},
		{"after_equals", "x = fo", 6, "fo", 4, 6},
		{"after_paren", "try (fo", 7, "fo", 5, 7},
		{"control", ":ru", 3, "ru", 1, 3},
		{"empty_at_boundary", "x = ", 4, "", 4, 4},
		{"mid_word", "foobar", 3, "foobar", 0, 6},
		{"at_start", "foo", 0, "foo", 0, 3},
		{"cursor past end", "foo", 9, "foo", 0, 3},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			word, start, end := wordBounds(tt.input, tt.cursor)
			if word != tt.wantWord || start != tt.wantStart || end != tt.wantEnd {
				t.Errorf("wordBounds(%q, %d) = (%q, %d, %d), want (%q, %d, %d)",
					tt.input, tt.cursor, word, start, end,
					tt.wantWord, tt.wantStart, tt.wantEnd)
			}
		})
	}
}

func TestCandidates(t *testing.T) {
	fs := host.NewMemory("/work")
	if err := fs.WriteFile("/work/main.devrc", []byte("[setup]\n[build]\n")); err != nil {
		t.Fatal(err)
	}

	in := lang.New(fs)
	if err := in.Load(t.Context(), "/work/main.devrc"); err != nil {
		t.Fatal(err)
	}

	in.Process(t.Context(), "project = demo")

	tests := []struct {
		name      string
		input     string
		wordStart int
		want      []string
		absent    []string
	}{
		{
			name:  "first word",
			input: "pro", wordStart: 0,
			want:   []string{"project", ".devrc", "if"},
			absent: []string{"-out"},
		},
		{
			name:  "later word",
			input: ".devrc -o", wordStart: 7,
			want:   []string{"-out", "project"},
			absent: []string{"if"},
		},
		{
			name:  "control command",
			input: ":r", wordStart: 1,
			want:   []string{"run", "quit"},
			absent: []string{"project"},
		},
		{
			name:  "section names after run",
			input: ":run se", wordStart: 5,
			want:   []string{"setup", "build"},
			absent: []string{"run"},
		},
		{
			name:  "nothing after other commands",
			input: ":vars x", wordStart: 6,
			absent: []string{"setup", "project"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := candidates(in, tt.input, tt.wordStart)

			for _, w := range tt.want {
				if !slices.Contains(got, w) {
					t.Errorf("candidates(%q) missing %q: %v", tt.input, w, got)
				}
			}

			for _, a := range tt.absent {
				if slices.Contains(got, a) {
					t.Errorf("candidates(%q) contains %q", tt.input, a)
				}
			}
		})
	}
}

func TestRenderCandidateBar_Empty(t *testing.T) {
	if got := renderCandidateBar(nil, -1, false, 80); got != "" {
		t.Errorf("renderCandidateBar(nil) = %q, want empty", got)
	}
}
