package ui

import (
	"strings"

	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

// ---------- Modal overlays ----------
//
// Popups draw on top of the base screen: the rows they cover are
// replaced, everything above and below stays visible but inert.

// popupText is a static text overlay (help page).
type popupText struct {
	title string
	text  string
}

func newPopupText(title, text string) popupText {
	return popupText{title: title, text: text}
}

func (p popupText) View() string {
	return popupStyle.Render(popupTitleStyle.Render(p.title) + "\n" + p.text)
}

// popupPrompt is a yes/no confirmation overlay.
type popupPrompt struct {
	title string
	text  string
}

func newPopupPrompt(title, text string) popupPrompt {
	return popupPrompt{title: title, text: text}
}

func (p popupPrompt) View() string {
	return popupStyle.Render(popupTitleStyle.Render(p.title) + "\n" + p.text)
}

// promptResult is the outcome of feeding a key to a prompt.
type promptResult int

const (
	promptNone promptResult = iota
	promptOk
	promptCancel
)

func (p popupPrompt) input(msg tea.KeyMsg) promptResult {
	switch msg.String() {
	case "y", "enter":
		return promptOk
	case "n", "esc", "q":
		return promptCancel
	default:
		return promptNone
	}
}

// popupScroll is a scrollable text overlay (file viewer).
type popupScroll struct {
	title string
	vp    viewport.Model
}

func newPopupScroll(title, content string, width, height int) popupScroll {
	vp := viewport.New(width, height)
	vp.SetContent(content)
	return popupScroll{title: title, vp: vp}
}

func (p popupScroll) View() string {
	return popupStyle.Render(popupTitleStyle.Render(p.title) + "\n" + p.vp.View())
}

// overlayCenter splices the popup's rows centered into the base screen.
func overlayCenter(base, popup string, width, height int) string {
	baseLines := strings.Split(base, "\n")
	for len(baseLines) < height {
		baseLines = append(baseLines, "")
	}
	popLines := strings.Split(popup, "\n")
	top := (height - len(popLines)) / 2
	if top < 0 {
		top = 0
	}
	for i, pl := range popLines {
		if top+i >= len(baseLines) {
			break
		}
		baseLines[top+i] = lipgloss.PlaceHorizontal(width, lipgloss.Center, pl)
	}
	return strings.Join(baseLines, "\n")
}
