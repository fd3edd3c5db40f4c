package tui

import tea "github.com/charmbracelet/bubbletea"

// NavigateTo switches the active page. When Payload is set it is delivered
// to the new page instead of calling its Init.
type NavigateTo struct {
	Page    string
	Payload tea.Msg
}

// statusNotice is shown as a one-line status by the receiving page.
type statusNotice struct {
	text string
}

type establishedMsg struct {
	established bool
	err         error
}

type unlockResult struct {
	password string
	match    bool
	err      error
}

type noteLoadedMsg struct {
	text string
	err  error
}

type noteSavedMsg struct {
	text string
	err  error
}

type passwordChangedMsg struct {
	password string
	err      error
}

type wipedMsg struct {
	err error
}

type copiedMsg struct {
	err error
}

type clearStatusMsg struct{}
