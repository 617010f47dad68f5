package entities

import "github.com/bwmarrin/discordgo"

// ButtonColor is the color of a panel's create ticket button.
type ButtonColor string

const (
	ButtonColorBlurple ButtonColor = "blurple"
	ButtonColorGray    ButtonColor = "gray"
	ButtonColorGreen   ButtonColor = "green"
	ButtonColorRed     ButtonColor = "red"
)

// Valid reports whether the color is one of the known colors.
func (c ButtonColor) Valid() bool {
	switch c {
	case ButtonColorBlurple, ButtonColorGray, ButtonColorGreen, ButtonColorRed:
		return true
	default:
		return false
	}
}

// Style returns the discord button style for the color. Unknown colors are blurple.
func (c ButtonColor) Style() discordgo.ButtonStyle {
	switch c {
	case ButtonColorGray:
		return discordgo.SecondaryButton
	case ButtonColorGreen:
		return discordgo.SuccessButton
	case ButtonColorRed:
		return discordgo.DangerButton
	default:
		return discordgo.PrimaryButton
	}
}
