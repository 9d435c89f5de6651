package feed

import (
	"bufio"
	"fmt"
	"os"
	"regexp"
)

// The closing quote is optional so a line cut inside the attribute still
// yields its URL.
var xmlURLPattern = regexp.MustCompile(`xmlUrl="([^"]+)`)

// ImportAkregator extracts the xmlUrl attribute of every line of an
// akregator/OPML subscription export. Lines without one are skipped and
// duplicates are kept in file order.
func ImportAkregator(path string) ([]string, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("opening feed list: %w", err)
	}
	defer f.Close()

	var urls []string
	sc := bufio.NewScanner(f)
	sc.Buffer(make([]byte, 0, 64*1024), 1024*1024)
	for sc.Scan() {
		if m := xmlURLPattern.FindStringSubmatch(sc.Text()); m != nil {
			urls = append(urls, m[1])
		}
	}
	if err := sc.Err(); err != nil {
		return nil, fmt.Errorf("reading feed list: %w", err)
	}
	return urls, nil
}
