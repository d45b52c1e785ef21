package welcome

import (
	"charm.land/lipgloss/v2"

	"github.com/abhisek/levelcheck/internal/ui/theme"
)

const bannerArt = `
 ╦  ╔═╗╦  ╦╔═╗╦  ╔═╗╦ ╦╔═╗╔═╗╦╔═
 ║  ║╣ ╚╗╔╝║╣ ║  ║  ╠═╣║╣ ║  ╠╩╗
 ╩═╝╚═╝ ╚╝ ╚═╝╩═╝╚═╝╩ ╩╚═╝╚═╝╩ ╩`

const bannerCompact = "L E V E L C H E C K"

// RenderBanner returns the banner, or a one-line version for narrow
// terminals.
func RenderBanner(width int) string {
	style := lipgloss.NewStyle().
		Foreground(theme.Primary).
		Bold(true)
	if width < 40 {
		return style.Render(bannerCompact)
	}
	return style.Render(bannerArt)
}
