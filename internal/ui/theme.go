package ui

import "charm.land/lipgloss/v2"

type Theme struct {
	Header     lipgloss.Style
	Title      lipgloss.Style
	Body       lipgloss.Style
	Score      lipgloss.Style
	Accent     lipgloss.Style
	Pass       lipgloss.Style
	Fail       lipgloss.Style
	Star       lipgloss.Style
	Muted      lipgloss.Style
	Card       lipgloss.Style
	CardEarned lipgloss.Style
}

func DefaultTheme() Theme {
	return ThemeForVariant("modern_arcade")
}

func ThemeForVariant(variant string) Theme {
	switch variant {
	case "cozy_clean":
		return cozyCleanTheme()
	case "retro_terminal":
		return retroTerminalTheme()
	default:
		return modernArcadeTheme()
	}
}

// withASCIIBorders swaps the card borders for plain ASCII ones.
func withASCIIBorders(t Theme) Theme {
	t.Card = t.Card.Border(lipgloss.ASCIIBorder())
	t.CardEarned = t.CardEarned.Border(lipgloss.ASCIIBorder())
	return t
}

func modernArcadeTheme() Theme {
	amber := lipgloss.Color("#FFC857")
	mint := lipgloss.Color("#67F0A8")
	brick := lipgloss.Color("#FF6F91")
	ink := lipgloss.Color("#0E1420")
	powder := lipgloss.Color("#EAF2FF")
	blue := lipgloss.Color("#5EEBFF")
	border := lipgloss.Color("#4B5F8A")

	return Theme{
		Header: lipgloss.NewStyle().
			Background(ink).
			Foreground(powder).
			Padding(0, 1),
		Title: lipgloss.NewStyle().
			Foreground(blue).
			Bold(true),
		Body: lipgloss.NewStyle().
			Foreground(powder),
		Score: lipgloss.NewStyle().
			Foreground(amber).
			Bold(true),
		Accent: lipgloss.NewStyle().
			Foreground(blue).
			Bold(true),
		Pass: lipgloss.NewStyle().
			Foreground(mint).
			Bold(true),
		Fail: lipgloss.NewStyle().
			Foreground(brick).
			Bold(true),
		Star: lipgloss.NewStyle().
			Foreground(amber),
		Muted: lipgloss.NewStyle().
			Foreground(lipgloss.Color("#9CAAC6")),
		Card: lipgloss.NewStyle().
			BorderStyle(lipgloss.RoundedBorder()).
			BorderForeground(border).
			Padding(0, 1),
		CardEarned: lipgloss.NewStyle().
			BorderStyle(lipgloss.RoundedBorder()).
			BorderForeground(mint).
			Padding(0, 1),
	}
}

func cozyCleanTheme() Theme {
	honey := lipgloss.Color("#F2B872")
	sage := lipgloss.Color("#80C4A3")
	rose := lipgloss.Color("#D17A86")
	night := lipgloss.Color("#1E2430")
	slate := lipgloss.Color("#30394A")
	paper := lipgloss.Color("#F4F6FA")
	sky := lipgloss.Color("#86B6F6")

	return Theme{
		Header:     lipgloss.NewStyle().Background(night).Foreground(paper).Padding(0, 1),
		Title:      lipgloss.NewStyle().Foreground(honey).Bold(true),
		Body:       lipgloss.NewStyle().Foreground(paper),
		Score:      lipgloss.NewStyle().Foreground(honey).Bold(true),
		Accent:     lipgloss.NewStyle().Foreground(sky).Bold(true),
		Pass:       lipgloss.NewStyle().Foreground(sage).Bold(true),
		Fail:       lipgloss.NewStyle().Foreground(rose).Bold(true),
		Star:       lipgloss.NewStyle().Foreground(honey),
		Muted:      lipgloss.NewStyle().Foreground(lipgloss.Color("#A3ACC2")),
		Card:       lipgloss.NewStyle().BorderStyle(lipgloss.RoundedBorder()).BorderForeground(slate).Padding(0, 1),
		CardEarned: lipgloss.NewStyle().BorderStyle(lipgloss.RoundedBorder()).BorderForeground(sage).Padding(0, 1),
	}
}

func retroTerminalTheme() Theme {
	lime := lipgloss.Color("#9CF5A2")
	amber := lipgloss.Color("#E5D47A")
	red := lipgloss.Color("#FF6B6B")
	deep := lipgloss.Color("#07150A")
	glow := lipgloss.Color("#C5F7C4")

	return Theme{
		Header:     lipgloss.NewStyle().Background(deep).Foreground(glow).Padding(0, 1),
		Title:      lipgloss.NewStyle().Foreground(amber).Bold(true),
		Body:       lipgloss.NewStyle().Foreground(glow),
		Score:      lipgloss.NewStyle().Foreground(lime).Bold(true),
		Accent:     lipgloss.NewStyle().Foreground(lime).Bold(true),
		Pass:       lipgloss.NewStyle().Foreground(lime).Bold(true),
		Fail:       lipgloss.NewStyle().Foreground(red).Bold(true),
		Star:       lipgloss.NewStyle().Foreground(amber),
		Muted:      lipgloss.NewStyle().Foreground(lipgloss.Color("#73A17A")),
		Card:       lipgloss.NewStyle().BorderStyle(lipgloss.DoubleBorder()).BorderForeground(lipgloss.Color("#1F5C2F")).Padding(0, 1),
		CardEarned: lipgloss.NewStyle().BorderStyle(lipgloss.DoubleBorder()).BorderForeground(amber).Padding(0, 1),
	}
}
