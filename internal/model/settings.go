package model

import "strings"

// SaveMode selects what happens when a quotation is exported.
type SaveMode string

const (
	// SaveModeAskEveryTime prompts for a destination, then opens the file.
	SaveModeAskEveryTime SaveMode = "ask_every_time"
	// SaveModeAutoSaveOpen saves into the save folder and opens the file.
	SaveModeAutoSaveOpen SaveMode = "auto_save_open"
	// SaveModeAutoSaveOnly saves into the save folder.
	SaveModeAutoSaveOnly SaveMode = "auto_save_only"
	// SaveModeQuickPrint saves into the save folder and sends it to the printer.
	SaveModeQuickPrint SaveMode = "quick_print"
)

// SaveModes lists every mode in menu order.
var SaveModes = []SaveMode{
	SaveModeAskEveryTime,
	SaveModeAutoSaveOpen,
	SaveModeAutoSaveOnly,
	SaveModeQuickPrint,
}

// ParseSaveMode accepts the stored form ("auto_save_open") as well as the
// labels a user would type ("Auto Save & Open", "quick-print").
func ParseSaveMode(raw string) (SaveMode, bool) {
	normalized := strings.ToLower(strings.TrimSpace(raw))
	normalized = strings.NewReplacer("&", " ", "-", " ", "_", " ").Replace(normalized)
	normalized = strings.Join(strings.Fields(normalized), "_")
	for _, mode := range SaveModes {
		if string(mode) == normalized {
			return mode, true
		}
	}
	return "", false
}

// AutoSaves reports whether the mode writes into the save folder without asking.
func (m SaveMode) AutoSaves() bool {
	return m != SaveModeAskEveryTime
}

// Label returns the human-readable name of the mode.
func (m SaveMode) Label() string {
	switch m {
	case SaveModeAskEveryTime:
		return "Ask Every Time"
	case SaveModeAutoSaveOpen:
		return "Auto Save & Open"
	case SaveModeAutoSaveOnly:
		return "Auto Save Only"
	case SaveModeQuickPrint:
		return "Quick Print"
	default:
		return string(m)
	}
}

// Settings is the only state that survives between sessions.
type Settings struct {
	SaveMode   SaveMode `json:"save_mode"`
	SaveFolder string   `json:"save_folder"`
}

// DefaultSettings returns the settings used before anything is saved.
func DefaultSettings() Settings {
	return Settings{SaveMode: SaveModeAskEveryTime}
}
