package tui

import (
	"github.com/matheuskafuri/scoopy/internal/feed"
)

type feedLoadedMsg struct {
	index int
	url   string
	feed  feed.Feed
	err   error
}

type launchErrMsg struct {
	err error
}
