package lang

import "strings"

// Tokenize splits a statement line into tokens on runs of spaces and tabs
// outside double-quoted spans. Tokens are byte-exact substrings of line, so
// bytes that are not valid UTF-8 pass through unchanged.
//
// Quote characters toggle the quoted state and are kept in the token; they are
// stripped later by [Interpreter.Evaluate]. An unbalanced quote keeps
// consuming to the end of the line.
func Tokenize(line string) []string {
	var (
		tokens []string
		cur    strings.Builder
		quoted bool
	)

	for i := 0; i < len(line); i++ {
		switch c := line[i]; {
		case c == '"':
			quoted = !quoted
			cur.WriteByte(c)

		case (c == ' ' || c == '\t') && !quoted:
			if cur.Len() > 0 {
				tokens = append(tokens, cur.String())
				cur.Reset()
			}

		default:
			cur.WriteByte(c)
		}
	}

	if cur.Len() > 0 {
		tokens = append(tokens, cur.String())
	}

	return tokens
}

// Marker identifies an optional clause recognized by an observational
// statement handler.
type Marker int

const (
	MarkGlob Marker = iota
	MarkGlobDefault
	MarkOut
	MarkImportRef
	MarkThisDir
	MarkThisRef
	MarkEnvCategory
	MarkLinesFetched
	MarkOutNumerics
	MarkLinenum
	MarkGetline
	MarkActiveline
	MarkCurrentdir
	MarkGetContentNull
	MarkContentNull
	MarkTableContent
	MarkFile
	MarkFileExt
	MarkEnvActivate
	MarkEnvContent
	MarkFileIsStr
	MarkModeScript
	MarkPyExt
	MarkTerminal
	MarkCmdbin
	MarkByp
	markerCount
)

// markerText is the clause text of each marker, matched against the line with
// whitespace runs collapsed to a single space.
var markerText = [markerCount]string{
	MarkGlob:           "-glob",
	MarkGlobDefault:    "-glob default",
	MarkOut:            "-out",
	MarkImportRef:      "@DEVRC.IMPORT=",
	MarkThisDir:        "this.dir",
	MarkThisRef:        "this.",
	MarkEnvCategory:    "env.category",
	MarkLinesFetched:   "this.lines.fetched",
	MarkOutNumerics:    "-out is numerics",
	MarkLinenum:        "-linenum",
	MarkGetline:        "-getline",
	MarkActiveline:     "-activeline",
	MarkCurrentdir:     "currentdir",
	MarkGetContentNull: "get content[null]",
	MarkContentNull:    "content[null]",
	MarkTableContent:   "table[content]",
	MarkFile:           "file",
	MarkFileExt:        "file_ext",
	MarkEnvActivate:    "env[activate]",
	MarkEnvContent:     "env[content]",
	MarkFileIsStr:      "file is STR",
	MarkModeScript:     "-mode SCRIPT",
	MarkPyExt:          ".py",
	MarkTerminal:       "terminal",
	MarkCmdbin:         "-cmdbin",
	MarkByp:            "-byp",
}

// Markers is the set of markers present in one statement.
type Markers [markerCount]bool

// Scan reports which markers occur in the already-tokenized statement.
// A marker is present when its text occurs in the tokens rejoined by single
// spaces, so multi-token clauses such as "-glob default" match regardless of
// the original spacing.
func Scan(tokens []string) Markers {
	var m Markers

	joined := strings.Join(tokens, " ")

	for i, text := range markerText {
		m[i] = strings.Contains(joined, text)
	}

	return m
}

// Has reports whether every given marker is present.
func (m Markers) Has(marks ...Marker) bool {
	for _, mark := range marks {
		if mark < 0 || mark >= markerCount || !m[mark] {
			return false
		}
	}

	return true
}
