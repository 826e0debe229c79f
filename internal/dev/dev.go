package dev

import (
	"fmt"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/robinovitch61/thr/internal/message"
	"github.com/rs/zerolog"
	"os"
	"sync"
)

var debugSet = os.Getenv("THR_DEBUG")
var debugPath = os.Getenv("THR_DEBUG_PATH")

var (
	logger     zerolog.Logger
	loggerOnce sync.Once
)

func fileLogger() zerolog.Logger {
	loggerOnce.Do(func() {
		if debugPath == "" {
			debugPath = "thr.log"
		}
		file, err := os.OpenFile(debugPath, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0666)
		if err != nil {
			logger = zerolog.Nop()
			return
		}
		zerolog.TimeFieldFormat = zerolog.TimeFormatUnixMicro
		logger = zerolog.New(file).With().Timestamp().Logger()
	})
	return logger
}

// Enabled reports whether debug logging was switched on via THR_DEBUG
func Enabled() bool {
	return debugSet != ""
}

func Debug(msg string) {
	if !Enabled() {
		return
	}
	l := fileLogger()
	l.Debug().Msg(msg)
}

// DebugEvent returns a structured debug event, or nil when debugging is off. zerolog events are nil-safe
func DebugEvent() *zerolog.Event {
	if !Enabled() {
		return nil
	}
	l := fileLogger()
	return l.Debug()
}

func DebugUpdateMsg(component string, msg tea.Msg) {
	if !Enabled() {
		return
	}
	switch msg.(type) {
	case message.ScrollStopMsg, message.RefreshTimestampsMsg:
	// skip logging messages that are too frequent
	default:
		e := DebugEvent().Str("component", component).Str("msg", fmt.Sprintf("%T", msg))
		if keyMsg, ok := msg.(tea.KeyMsg); ok {
			e = e.Str("key", keyMsg.String())
		}
		e.Msg("update")
	}
}
