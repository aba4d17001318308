// Package config loads the optional chip8vm.yaml settings file and
// resolves color flag values. File loading is grounded on yaml.v3 (an
// indirect dependency of nevisdale-go-chip8 via testify, promoted here to
// a direct one); color resolution extends nevisdale-go-chip8/cmd/main.go's
// decodeColorFromHex with a named-color lookup ported from
// bradford-hamilton-chippy/internal/pixel's use of
// golang.org/x/image/colornames.
package config

import (
	"encoding/hex"
	"fmt"
	"image/color"
	"os"
	"strings"

	"golang.org/x/image/colornames"
	"gopkg.in/yaml.v3"

	"github.com/nevisdale/chip8vm/internal/chip8vm"
)

// File is the optional on-disk settings document, e.g.:
//
//	mode: schip
//	tickrate: 30
//	backend: sdl
//	fg: "65f057"
//	bg: "000000"
type File struct {
	Mode     string `yaml:"mode"`
	Tickrate int    `yaml:"tickrate"`
	Backend  string `yaml:"backend"`
	Fg       string `yaml:"fg"`
	Bg       string `yaml:"bg"`
}

// Load reads and parses path. A missing file is not an error: it returns
// a zero File so callers fall back to flag defaults.
func Load(path string) (File, error) {
	var f File
	data, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		return f, nil
	}
	if err != nil {
		return f, fmt.Errorf("read config %s: %w", path, err)
	}
	if err := yaml.Unmarshal(data, &f); err != nil {
		return f, fmt.Errorf("parse config %s: %w", path, err)
	}
	return f, nil
}

// ResolveMode parses s per chip8vm.ParseMode, defaulting to ModeOCTO when
// s is empty.
func ResolveMode(s string) (chip8vm.Mode, error) {
	if s == "" {
		return chip8vm.ModeOCTO, nil
	}
	mode, ok := chip8vm.ParseMode(s)
	if !ok {
		return 0, fmt.Errorf("unknown mode %q", s)
	}
	return mode, nil
}

// ResolveColor decodes s as either a golang.org/x/image/colornames entry
// (case-insensitive, e.g. "green", "cornflowerblue") or a bare "RRGGBB" /
// "RRGGBBAA" hex string, matching nevisdale-go-chip8's hex decoder with
// named colors layered on top.
func ResolveColor(s string, fallback color.Color) (color.Color, error) {
	if s == "" {
		return fallback, nil
	}
	if c, ok := colornames.Map[strings.ToLower(s)]; ok {
		return c, nil
	}
	return decodeColorFromHex(s)
}

func decodeColorFromHex(s string) (color.Color, error) {
	data, err := hex.DecodeString(s)
	if err != nil {
		return nil, fmt.Errorf("decode color %q: %w", s, err)
	}
	switch len(data) {
	case 3:
		return color.RGBA{R: data[0], G: data[1], B: data[2], A: 0xFF}, nil
	case 4:
		return color.RGBA{R: data[0], G: data[1], B: data[2], A: data[3]}, nil
	default:
		return nil, fmt.Errorf("decode color %q: want 3 or 4 bytes, got %d", s, len(data))
	}
}
