package feed

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

const sampleRSS = `<?xml version="1.0" encoding="UTF-8"?>
<rss version="2.0">
<channel>
  <title>Nature Photonics</title>
  <item>
    <title>Ultrafast lasers</title>
    <description>&lt;p&gt;Pulses in the &lt;b&gt;attosecond&lt;/b&gt; regime&lt;/p&gt;</description>
    <link>https://example.com/a</link>
  </item>
  <item>
    <title>Metasurfaces</title>
    <link>https://example.com/b</link>
  </item>
</channel>
</rss>`

const untitledRSS = `<?xml version="1.0" encoding="UTF-8"?>
<rss version="2.0">
<channel>
  <item><title>Orphan</title><link>https://example.com/o</link></item>
</channel>
</rss>`

func TestRSSSourceFetch(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/rss+xml")
		fmt.Fprint(w, sampleRSS)
	}))
	defer srv.Close()

	f, err := NewRSSSource().Fetch(context.Background(), srv.URL)
	if err != nil {
		t.Fatalf("Fetch: %v", err)
	}
	if f.Title != "Nature Photonics" {
		t.Errorf("title = %q", f.Title)
	}
	if !f.Usable() {
		t.Error("expected titled feed to be usable")
	}
	if len(f.Entries) != 2 {
		t.Fatalf("expected 2 entries, got %d", len(f.Entries))
	}
	if f.Entries[0].Description != "Pulses in the attosecond regime" {
		t.Errorf("description = %q", f.Entries[0].Description)
	}
	if f.Entries[1].Description != "" {
		t.Errorf("expected empty description, got %q", f.Entries[1].Description)
	}
	if f.Entries[1].Link != "https://example.com/b" {
		t.Errorf("link = %q", f.Entries[1].Link)
	}
}

func TestRSSSourceUntitledFeed(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, untitledRSS)
	}))
	defer srv.Close()

	f, err := NewRSSSource().Fetch(context.Background(), srv.URL)
	if err != nil {
		t.Fatalf("Fetch: %v", err)
	}
	if f.Usable() {
		t.Error("feed without title should not be usable")
	}
}

func TestStripHTML(t *testing.T) {
	tests := []struct {
		input string
		want  string
	}{
		{"<p>Hello</p>", "Hello"},
		{"<b>Bold</b> and <i>italic</i>", "Bold and italic"},
		{"No tags here", "No tags here"},
		{"<div>  Multiple   spaces  </div>", "Multiple spaces"},
		{"Lasers &amp; optics", "Lasers & optics"},
		{"<p>T &lt; 4&nbsp;K</p>", "T < 4 K"},
		{"", ""},
	}
	for _, tt := range tests {
		got := stripHTML(tt.input)
		if got != tt.want {
			t.Errorf("stripHTML(%q) = %q, want %q", tt.input, got, tt.want)
		}
	}
}

type fakeSource map[string]Feed

func (s fakeSource) Fetch(_ context.Context, url string) (Feed, error) {
	f, ok := s[url]
	if !ok {
		return Feed{}, errors.New("not found")
	}
	return f, nil
}

func TestFetchAllKeepsOrder(t *testing.T) {
	src := fakeSource{
		"a": {Title: "A"},
		"c": {Title: "C"},
	}
	results := FetchAll(context.Background(), src, []string{"a", "b", "c"}, 2)
	if len(results) != 3 {
		t.Fatalf("expected 3 results, got %d", len(results))
	}
	if results[0].Feed.Title != "A" || results[2].Feed.Title != "C" {
		t.Errorf("unexpected order: %+v", results)
	}
	if results[1].Err == nil || results[1].URL != "b" {
		t.Errorf("expected error for b, got %+v", results[1])
	}
}

func TestImportAkregator(t *testing.T) {
	content := strings.Join([]string{
		`<opml version="1.0">`,
		`<outline text="Nature" xmlUrl="http://feeds.nature.com/nphoton/rss/current" />`,
		`<outline text="no url here" />`,
		`<outline text="Science" xmlUrl="http://science.sciencemag.org/rss/current.xml" htmlUrl="x"/>`,
		`<outline text="Nature again" xmlUrl="http://feeds.nature.com/nphoton/rss/current" />`,
		`<outline text="Wrapped" xmlUrl="http://pubs.acs.org/action/showFeed`,
		`</opml>`,
	}, "\n")
	path := filepath.Join(t.TempDir(), "feeds.opml")
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}

	urls, err := ImportAkregator(path)
	if err != nil {
		t.Fatalf("ImportAkregator: %v", err)
	}
	want := []string{
		"http://feeds.nature.com/nphoton/rss/current",
		"http://science.sciencemag.org/rss/current.xml",
		"http://feeds.nature.com/nphoton/rss/current",
		"http://pubs.acs.org/action/showFeed",
	}
	if len(urls) != len(want) {
		t.Fatalf("got %v, want %v", urls, want)
	}
	for i := range want {
		if urls[i] != want[i] {
			t.Errorf("urls[%d] = %q, want %q", i, urls[i], want[i])
		}
	}
}

func TestImportAkregatorMissingFile(t *testing.T) {
	if _, err := ImportAkregator(filepath.Join(t.TempDir(), "missing")); err == nil {
		t.Error("expected error for missing file")
	}
}
