package internal

import (
	"time"
)

type Config struct {
	// FilePath is the thread JSON file. Ignored when Demo > 0
	FilePath      string
	CurrentUserID string
	HighlightedID string
	// LastViewedAt overrides the file's last viewed time when set
	LastViewedAt       time.Time
	RelativeTimestamps bool
	Watch              bool
	CellHeight         int
	Overscan           int
	ForceCompact       bool
	// Demo generates a thread with this many replies instead of reading FilePath
	Demo     int
	DemoSeed int64
	DemoEnd  time.Time
	Location *time.Location
	Version  string
}
