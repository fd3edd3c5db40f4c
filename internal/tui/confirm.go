package tui

type confirmModel struct {
	message string
}

func newWipeConfirm() confirmModel {
	return confirmModel{message: "Стереть пароль и заметку? Восстановить их будет нельзя."}
}

func (m confirmModel) View() string {
	content := m.message + "\n\n"
	content += "y да    n нет"
	return overlayBoxStyle.Render(content)
}
