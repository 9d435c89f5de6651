package review

import (
	"strings"
	"testing"

	"github.com/matheuskafuri/scoopy/internal/feed"
)

func prompt(desc string) Prompt {
	return Prompt{
		FeedTitle: "Science",
		Entry:     feed.Entry{Title: "A result", Description: desc},
		Index:     0,
		Total:     4,
	}
}

func TestLayoutIndicator(t *testing.T) {
	page := Layout(prompt("x"), 20, 5)
	if page.Indicator != "Article 1 of 4" {
		t.Errorf("indicator = %q", page.Indicator)
	}
	if page.Title != "A result" || page.FeedTitle != "Science" {
		t.Errorf("unexpected page %+v", page)
	}
}

func TestLayoutEmptyDescription(t *testing.T) {
	page := Layout(prompt(""), 20, 5)
	if len(page.Lines) != 0 {
		t.Errorf("expected no lines, got %q", page.Lines)
	}
	if page.Truncated {
		t.Error("empty description cannot be truncated")
	}
}

func TestLayoutWraps(t *testing.T) {
	page := Layout(prompt("one two three four five six"), 9, 10)
	want := []string{"one two", "three", "four five", "six"}
	if strings.Join(page.Lines, "|") != strings.Join(want, "|") {
		t.Errorf("lines = %q, want %q", page.Lines, want)
	}
	if page.Truncated {
		t.Error("everything fits, expected no truncation")
	}
}

func TestLayoutTruncates(t *testing.T) {
	page := Layout(prompt("one two three four five six"), 9, 2)
	if len(page.Lines) != 2 {
		t.Fatalf("expected 2 lines, got %d", len(page.Lines))
	}
	if !page.Truncated {
		t.Error("expected truncation marker")
	}
}

func TestLayoutExactFitNotTruncated(t *testing.T) {
	page := Layout(prompt("aaaa bbbb"), 4, 2)
	if page.Truncated {
		t.Errorf("lines %q fit exactly, expected no truncation", page.Lines)
	}

	page = Layout(prompt("abcde fgh"), 5, 3)
	if page.Truncated {
		t.Errorf("a word as wide as the line is not cut, got %+v", page)
	}
}

func TestLayoutLongWordIsCut(t *testing.T) {
	page := Layout(prompt("supercalifragilistic end"), 5, 3)
	if page.Lines[0] != "super" {
		t.Errorf("first line = %q, want %q", page.Lines[0], "super")
	}
	if page.Lines[1] != "end" {
		t.Errorf("second line = %q, want %q", page.Lines[1], "end")
	}
	if !page.Truncated {
		t.Error("a cut word must be marked as truncated")
	}
}

func TestLayoutSingleLongWordMarked(t *testing.T) {
	page := Layout(prompt("abcdefghijklmnop"), 5, 3)
	if len(page.Lines) != 1 || page.Lines[0] != "abcde" {
		t.Errorf("unexpected lines %q", page.Lines)
	}
	if !page.Truncated {
		t.Error("expected the marker after a cut word")
	}
}

func TestLayoutZeroRows(t *testing.T) {
	page := Layout(prompt("some text"), 20, 0)
	if len(page.Lines) != 0 || !page.Truncated {
		t.Errorf("expected all text truncated, got %+v", page)
	}
}
