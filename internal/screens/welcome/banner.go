package welcome

import (
	"charm.land/lipgloss/v2"

	"github.com/abhisek/adaptiq/internal/ui/theme"
)

const bannerArt = ` █████╗ ██████╗  █████╗ ██████╗ ████████╗██╗ ██████╗
██╔══██╗██╔══██╗██╔══██╗██╔══██╗╚══██╔══╝██║██╔═══██╗
███████║██║  ██║███████║██████╔╝   ██║   ██║██║   ██║
██╔══██║██║  ██║██╔══██║██╔═══╝    ██║   ██║██║▄▄ ██║
██║  ██║██████╔╝██║  ██║██║        ██║   ██║╚██████╔╝
╚═╝  ╚═╝╚═════╝ ╚═╝  ╚═╝╚═╝        ╚═╝   ╚═╝ ╚══▀▀═╝`

const bannerCompact = "A D A P T I Q"

var bannerWidth = lipgloss.Width(bannerArt)

// RenderBanner draws the block-letter name, or the spaced-out compact
// name when width cannot fit the block letters.
func RenderBanner(width int) string {
	style := lipgloss.NewStyle().Foreground(theme.Primary).Bold(true)
	if width < bannerWidth+2 {
		return style.Render(bannerCompact)
	}
	return style.Render(bannerArt)
}
