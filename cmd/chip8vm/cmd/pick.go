package cmd

import (
	"fmt"

	"github.com/sqweek/dialog"
)

// pickROM opens a native "open file" dialog, grounded on
// massung-CHIP-8/main.go's open(), used as a fallback when run is invoked
// with no ROM path argument.
func pickROM() (string, error) {
	path, err := dialog.File().
		Title("Load CHIP-8 / SCHIP / XO-CHIP ROM").
		Filter("All Files", "*").
		Filter("ROM Files", "ch8", "rom", "c8").
		Load()
	if err != nil {
		return "", fmt.Errorf("pick rom: %w", err)
	}
	return path, nil
}
