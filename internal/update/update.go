// Package update looks for newer scoopy releases on GitHub.
package update

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"runtime/debug"
	"strings"
	"time"

	"golang.org/x/mod/semver"
)

const defaultRepo = "matheuskafuri/scoopy"

var apiBase = "https://api.github.com"

// Result describes a release newer than the running build.
type Result struct {
	LatestVersion string
	URL           string
}

type release struct {
	TagName    string `json:"tag_name"`
	HTMLURL    string `json:"html_url"`
	Draft      bool   `json:"draft"`
	Prerelease bool   `json:"prerelease"`
}

// Repo returns the owner/name of the repository the binary was built
// from, read from the main module path.
func Repo() string {
	if info, ok := debug.ReadBuildInfo(); ok {
		if r := repoFromModule(info.Main.Path); r != "" {
			return r
		}
	}
	return defaultRepo
}

func repoFromModule(path string) string {
	parts := strings.Split(path, "/")
	if len(parts) < 3 || parts[0] != "github.com" {
		return ""
	}
	return parts[1] + "/" + parts[2]
}

// Check reports a newer release of Repo. Returns nil on any error
// (non-fatal) and for builds without a semantic version.
func Check(ctx context.Context, currentVersion string) *Result {
	return CheckRepo(ctx, Repo(), currentVersion)
}

func CheckRepo(ctx context.Context, repo, currentVersion string) *Result {
	current := canonical(currentVersion)
	if current == "" {
		return nil
	}

	rel, err := latestRelease(ctx, repo)
	if err != nil || rel.Draft || rel.Prerelease {
		return nil
	}
	latest := canonical(rel.TagName)
	if latest == "" || semver.Compare(latest, current) <= 0 {
		return nil
	}
	return &Result{LatestVersion: strings.TrimPrefix(latest, "v"), URL: rel.HTMLURL}
}

func latestRelease(ctx context.Context, repo string) (release, error) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	url := fmt.Sprintf("%s/repos/%s/releases/latest", apiBase, repo)
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return release{}, err
	}
	req.Header.Set("Accept", "application/vnd.github+json")

	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		return release{}, err
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return release{}, fmt.Errorf("%s: %s", url, resp.Status)
	}

	var rel release
	if err := json.NewDecoder(resp.Body).Decode(&rel); err != nil {
		return release{}, err
	}
	return rel, nil
}

// canonical returns v in "vMAJOR.MINOR.PATCH" form, or "" when it is not a
// semantic version ("dev", commit hashes).
func canonical(v string) string {
	v = strings.TrimSpace(v)
	if v != "" && v[0] != 'v' {
		v = "v" + v
	}
	return semver.Canonical(v)
}
