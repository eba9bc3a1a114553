package login

import (
	"charm.land/lipgloss/v2"

	"github.com/classlens/classlens/internal/ui/theme"
)

const bannerArt = `
  ██████╗██╗      █████╗ ███████╗███████╗██╗     ███████╗███╗   ██╗███████╗
 ██╔════╝██║     ██╔══██╗██╔════╝██╔════╝██║     ██╔════╝████╗  ██║██╔════╝
 ██║     ██║     ███████║███████╗███████╗██║     █████╗  ██╔██╗ ██║███████╗
 ██║     ██║     ██╔══██║╚════██║╚════██║██║     ██╔══╝  ██║╚██╗██║╚════██║
 ╚██████╗███████╗██║  ██║███████║███████║███████╗███████╗██║ ╚████║███████║
  ╚═════╝╚══════╝╚═╝  ╚═╝╚══════╝╚══════╝╚══════╝╚══════╝╚═╝  ╚═══╝╚══════╝`

const bannerCompact = "C L A S S L E N S"

// bannerWidth is the widest line of bannerArt.
const bannerWidth = 75

// RenderBanner returns the product banner, or a spaced-out name on
// terminals too narrow for the block letters.
func RenderBanner(width int) string {
	style := lipgloss.NewStyle().
		Foreground(theme.Primary).
		Bold(true)

	if width < bannerWidth+2 {
		return style.Render(bannerCompact)
	}
	return style.Render(bannerArt)
}
