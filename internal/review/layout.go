package review

import (
	"fmt"
	"strings"
	"unicode/utf8"
)

// TruncatedMarker follows the description when it does not fit.
const TruncatedMarker = "[truncated]"

// Page is the laid out form of a prompt.
type Page struct {
	FeedTitle string
	Indicator string
	Title     string
	Lines     []string
	Truncated bool
}

// Layout wraps the entry description to width columns and keeps at most
// rows lines of it.
func Layout(p Prompt, width, rows int) Page {
	lines, rest, cut := wrapWords(strings.Fields(p.Entry.Description), width, rows)
	return Page{
		FeedTitle: p.FeedTitle,
		Indicator: fmt.Sprintf("Article %d of %d", p.Index+1, p.Total),
		Title:     p.Entry.Title,
		Lines:     lines,
		Truncated: rest > 0 || cut,
	}
}

// wrapWords fills lines greedily and returns them with the number of words
// that did not fit. A word wider than the line is cut, which is reported
// by cut.
func wrapWords(words []string, width, rows int) (lines []string, rest int, cut bool) {
	if width < 1 {
		width = 1
	}
	i := 0
	for i < len(words) && len(lines) < rows {
		line := words[i]
		if utf8.RuneCountInString(line) > width {
			line = string([]rune(line)[:width])
			cut = true
		}
		i++
		for i < len(words) {
			if utf8.RuneCountInString(line)+1+utf8.RuneCountInString(words[i]) > width {
				break
			}
			line += " " + words[i]
			i++
		}
		lines = append(lines, line)
	}
	return lines, len(words) - i, cut
}
