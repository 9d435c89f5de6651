package tui

import (
	"fmt"

	"github.com/charmbracelet/lipgloss"
)

func renderBottomBar(left, hints string, width int) string {
	inner := width - 2 // bar padding
	right := " " + hints
	if lipgloss.Width(left)+lipgloss.Width(right) > inner {
		left = ""
		right = truncateStr(right, inner)
	}

	gap := inner - lipgloss.Width(left) - lipgloss.Width(right)
	if gap < 0 {
		gap = 0
	}

	bar := left + fmt.Sprintf("%*s", gap, "") + right

	return statusBarStyle.Width(width).Render(bar)
}

// renderHeader puts the feed title on the left and the article indicator
// on the right.
func renderHeader(feedTitle, indicator string, width int) string {
	right := indicatorStyle.Render(indicator)
	left := headerStyle.Render(truncateStr(feedTitle, width-lipgloss.Width(right)-2))

	gap := width - lipgloss.Width(left) - lipgloss.Width(right)
	if gap < 0 {
		gap = 0
	}
	return left + fmt.Sprintf("%*s", gap, "") + right
}
