package tui

type errorOverlayModel struct {
	message string
}

func (m errorOverlayModel) View() string {
	if m.message == "" {
		return ""
	}
	return errorStyle.Render("Ошибка: " + m.message)
}
