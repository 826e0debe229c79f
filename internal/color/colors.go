package color

import (
	"crypto/md5"
	"encoding/hex"
	"fmt"
	"github.com/charmbracelet/lipgloss"
)

var usernameColors = []lipgloss.Color{
	lipgloss.Color("#58A2EE"), // blue
	lipgloss.Color("#3FE34B"), // bright green
	lipgloss.Color("#7c60d7"), // purple
	lipgloss.Color("#FE7A00"), // orange
	lipgloss.Color("#56EBD3"), // teal
	lipgloss.Color("#42952E"), // green
	lipgloss.Color("#FFACE6"), // light pink
	lipgloss.Color("#FE16F4"), // bright pink
	lipgloss.Color("#D6A112"), // gold
	lipgloss.Color("#FF7E6A"), // tomato
}

// UsernameColor picks a stable color for a user so their posts are easy to follow down a thread
func UsernameColor(userID string) lipgloss.Color {
	hash := md5.Sum([]byte(userID))
	hashStr := hex.EncodeToString(hash[:])
	var hashValue int64
	_, err := fmt.Sscanf(hashStr[:8], "%x", &hashValue)
	if err != nil {
		return usernameColors[0]
	}
	return usernameColors[hashValue%int64(len(usernameColors))]
}
