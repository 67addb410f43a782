package repl

import (
	"maps"
	"slices"
	"strings"
	"unicode/utf8"

	"github.com/charmbracelet/lipgloss"
	"github.com/sahilm/fuzzy"

	"github.com/ardnew/devrc/lang"
)

// ctrlPrefix introduces a control command.
const ctrlPrefix = ":"

// ctrlCommands are the available control commands.
var ctrlCommands = []string{"help", "vars", "envs", "sections", "run", "clear", "quit"}

// isWordBoundary returns true if the rune is a word delimiter for completion
// purposes. Dots and hyphens are part of words so that ".devrc", "-crfolder"
// and dotted variable names complete as a whole.
func isWordBoundary(r rune) bool {
	switch r {
	case ' ', '\t',
		'(', ')', '[', ']', '{', '}',
		'=', ',', '"', ':':
		return true
	}

	return false
}

// wordBounds returns the current word at the cursor position and its byte
// boundaries within input. Returns an empty word when the cursor sits on a
// boundary.
func wordBounds(input string, cursor int) (word string, start, end int) {
	if cursor > len(input) {
		cursor = len(input)
	}

	start = cursor

	for start > 0 {
		r, size := utf8.DecodeLastRuneInString(input[:start])
		if isWordBoundary(r) {
			break
		}

		start -= size
	}

	end = cursor

	for end < len(input) {
		r, size := utf8.DecodeRuneInString(input[end:])
		if isWordBoundary(r) {
			break
		}

		end += size
	}

	return input[start:end], start, end
}

// candidates returns the completion candidates for a word starting at
// wordStart in input.
//
//   - After ":" at the start of the line: control commands.
//   - After ":run ": section names.
//   - First word of a statement: keywords and variable names.
//   - Any later word: flags and variable names.
func candidates(in *lang.Interpreter, input string, wordStart int) []string {
	if rest, ok := strings.CutPrefix(input, ctrlPrefix); ok {
		if wordStart == len(ctrlPrefix) {
			return ctrlCommands
		}

		if fields := strings.Fields(rest[:wordStart-len(ctrlPrefix)]); len(fields) == 1 && fields[0] == "run" {
			return in.Sections().Names()
		}

		return nil
	}

	names := slices.Sorted(maps.Keys(in.Variables()))

	if strings.TrimSpace(input[:wordStart]) == "" {
		return append(lang.Keywords(), names...)
	}

	return append(lang.FlagNames(), names...)
}

// computeMatches calculates the fuzzy match results for the word at the
// cursor, ranked best-first, and the word boundaries. An empty word has no
// matches, so the hint line stays visible.
func (m model) computeMatches() (matches fuzzy.Matches, wordStart, wordEnd int) {
	input := m.input.Value()

	word, wordStart, wordEnd := wordBounds(input, m.input.Position())
	if word == "" {
		return nil, wordStart, wordEnd
	}

	cands := candidates(m.in, input, wordStart)
	if len(cands) == 0 {
		return nil, wordStart, wordEnd
	}

	return fuzzy.Find(word, cands), wordStart, wordEnd
}

// renderCandidateBar builds the single-line completion bar, ellipsized to fit
// within the given terminal width. The selected candidate (when tabbing) uses
// the selected style.
func renderCandidateBar(
	matches fuzzy.Matches,
	suggIdx int,
	tabActive bool,
	width int,
) string {
	if len(matches) == 0 || width <= 0 {
		return ""
	}

	const sep = "  "

	sepWidth := lipgloss.Width(sep)
	ellipsis := hintStyle.Render("...")
	ellipsisWidth := lipgloss.Width(ellipsis)

	var b strings.Builder

	used := 0

	for i, match := range matches {
		rendered := renderCandidate(match, tabActive && i == suggIdx)

		entryWidth := lipgloss.Width(rendered)
		if i > 0 {
			entryWidth += sepWidth
		}

		if used+entryWidth+ellipsisWidth > width && i > 0 {
			b.WriteString(sep)
			b.WriteString(ellipsis)

			break
		}

		if i > 0 {
			b.WriteString(sep)
		}

		b.WriteString(rendered)

		used += entryWidth
	}

	return b.String()
}

// renderCandidate renders a single candidate with matched characters
// highlighted.
func renderCandidate(match fuzzy.Match, selected bool) string {
	baseStyle := suggestionStyle
	highlightStyle := lipgloss.NewStyle().
		Foreground(lipgloss.Color("4")).
		Bold(true)

	if selected {
		baseStyle = selectedStyle
		highlightStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("0")).
			Background(lipgloss.Color("4")).
			Bold(true)
	}

	var b strings.Builder

	for i, r := range match.Str {
		if slices.Contains(match.MatchedIndexes, i) {
			b.WriteString(highlightStyle.Render(string(r)))
		} else {
			b.WriteString(baseStyle.Render(string(r)))
		}
	}

	return b.String()
}
