package tui

import (
	"context"
	"fmt"
	"time"

	"github.com/atotto/clipboard"
	tea "github.com/charmbracelet/bubbletea"
)

// clipboardWrite is swapped in tests.
var clipboardWrite = clipboard.WriteAll

func cmdCheckEstablished(ctx context.Context, v Vault) tea.Cmd {
	return func() tea.Msg {
		ok, err := v.IsEstablished(ctx)
		return establishedMsg{established: ok, err: err}
	}
}

func cmdEstablish(ctx context.Context, v Vault, password string) tea.Cmd {
	return func() tea.Msg {
		err := v.Establish(ctx, password)
		return unlockResult{password: password, match: err == nil, err: err}
	}
}

func cmdVerify(ctx context.Context, v Vault, password string) tea.Cmd {
	return func() tea.Msg {
		ok, err := v.Verify(ctx, password)
		return unlockResult{password: password, match: ok, err: err}
	}
}

func cmdReadNote(ctx context.Context, v Vault, password string) tea.Cmd {
	return func() tea.Msg {
		text, err := v.ReadNote(ctx, password)
		return noteLoadedMsg{text: text, err: err}
	}
}

func cmdWriteNote(ctx context.Context, v Vault, password, text string) tea.Cmd {
	return func() tea.Msg {
		err := v.WriteNote(ctx, password, text)
		return noteSavedMsg{text: text, err: err}
	}
}

func cmdChangePassword(ctx context.Context, v Vault, oldPassword, newPassword string) tea.Cmd {
	return func() tea.Msg {
		err := v.ChangePassword(ctx, oldPassword, newPassword)
		return passwordChangedMsg{password: newPassword, err: err}
	}
}

func cmdWipe(ctx context.Context, v Vault) tea.Cmd {
	return func() tea.Msg {
		return wipedMsg{err: v.Wipe(ctx)}
	}
}

func cmdCopyToClipboard(text string) tea.Cmd {
	return func() tea.Msg {
		if err := clipboardWrite(text); err != nil {
			return copiedMsg{err: fmt.Errorf("copy to clipboard: %w", err)}
		}
		return copiedMsg{}
	}
}

func cmdClearStatus() tea.Cmd {
	return tea.Tick(2*time.Second, func(time.Time) tea.Msg {
		return clearStatusMsg{}
	})
}

func navigate(page string, payload tea.Msg) tea.Cmd {
	return func() tea.Msg { return NavigateTo{Page: page, Payload: payload} }
}
