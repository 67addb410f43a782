package lang_test

import (
	"slices"
	"testing"

	"github.com/ardnew/devrc/lang"
)

func TestTokenize(t *testing.T) {
	tests := []struct {
		name string
		line string
		want []string
	}{
		{name: "empty", line: "", want: nil},
		{name: "blank", line: " \t ", want: nil},
		{name: "words", line: "out build", want: []string{"out", "build"}},
		{name: "runs of whitespace", line: "a  \t b", want: []string{"a", "b"}},
		{
			name: "quoted span kept whole",
			line: `.devrc -crfolder "build/my cache"`,
			want: []string{".devrc", "-crfolder", `"build/my cache"`},
		},
		{
			name: "quote inside token",
			line: `dirlist -out "a b"x`,
			want: []string{"dirlist", "-out", `"a b"x`},
		},
		{
			name: "invalid utf-8 kept byte-exact",
			line: "out build/\xff\xfe dir",
			want: []string{"out", "build/\xff\xfe", "dir"},
		},
		{
			name: "multibyte path",
			line: "out \"bü ild/\"",
			want: []string{"out", "\"bü ild/\""},
		},
		{
			name: "unbalanced quote runs to end",
			line: `x "a b c`,
			want: []string{"x", `"a b c`},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := lang.Tokenize(tt.line); !slices.Equal(got, tt.want) {
				t.Errorf("Tokenize(%q) = %q, want %q", tt.line, got, tt.want)
			}
		})
	}
}

func TestScan(t *testing.T) {
	tests := []struct {
		name    string
		line    string
		present []lang.Marker
		absent  []lang.Marker
	}{
		{
			name:    "multi-token marker across extra spaces",
			line:    "dirlist -glob   default",
			present: []lang.Marker{lang.MarkGlob, lang.MarkGlobDefault},
			absent:  []lang.Marker{lang.MarkOut},
		},
		{
			name:    "current markers",
			line:    "current -activeline -linenum get content[null]",
			present: []lang.Marker{lang.MarkActiveline, lang.MarkLinenum, lang.MarkGetContentNull, lang.MarkContentNull},
			absent:  []lang.Marker{lang.MarkGetline, lang.MarkCurrentdir},
		},
		{
			name:    "bypass markers",
			line:    `export byp( run.py terminal -cmdbin`,
			present: []lang.Marker{lang.MarkPyExt, lang.MarkTerminal, lang.MarkCmdbin},
			absent:  []lang.Marker{lang.MarkByp},
		},
		{
			name:   "nothing",
			line:   "get",
			absent: []lang.Marker{lang.MarkFile, lang.MarkTableContent, lang.MarkGlob},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m := lang.Scan(lang.Tokenize(tt.line))

			if len(tt.present) > 0 && !m.Has(tt.present...) {
				t.Errorf("Scan(%q) missing one of %v", tt.line, tt.present)
			}

			for _, mark := range tt.absent {
				if m.Has(mark) {
					t.Errorf("Scan(%q) unexpectedly has marker %d", tt.line, mark)
				}
			}
		})
	}
}

func TestParseFlags(t *testing.T) {
	tests := []struct {
		name   string
		tokens []string
		want   []lang.Flag
	}{
		{
			name:   "argument flags",
			tokens: []string{"-out", `"build/"`, "-mode", "SCRIPT"},
			want: []lang.Flag{
				{Name: "-out", Arg: `"build/"`, HasArg: true},
				{Name: "-mode", Arg: "SCRIPT", HasArg: true},
			},
		},
		{
			name:   "toggles",
			tokens: []string{"-force", "-timed", "-c"},
			want:   []lang.Flag{{Name: "-force"}, {Name: "-timed"}, {Name: "-c"}},
		},
		{
			name:   "unknown tokens skipped",
			tokens: []string{"-bogus", "word", "-a"},
			want:   []lang.Flag{{Name: "-a"}},
		},
		{
			name:   "argument consumes next flag",
			tokens: []string{"-glob", "-force"},
			want:   []lang.Flag{{Name: "-glob", Arg: "-force", HasArg: true}},
		},
		{
			name:   "missing argument",
			tokens: []string{"-enable", "-crfolder"},
			want:   []lang.Flag{{Name: "-enable"}},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := lang.ParseFlags(tt.tokens); !slices.Equal(got, tt.want) {
				t.Errorf("ParseFlags(%q) = %+v, want %+v", tt.tokens, got, tt.want)
			}
		})
	}
}
