package command

import (
	tea "github.com/charmbracelet/bubbletea"
	"github.com/robinovitch61/thr/internal/fileio"
)

type ThreadLoadedMsg struct {
	Path string
	File fileio.ThreadFile
	Err  error
}

func LoadThreadCmd(path string) tea.Cmd {
	return func() tea.Msg {
		tf, err := fileio.ReadThreadFile(path)
		return ThreadLoadedMsg{Path: path, File: tf, Err: err}
	}
}
