package cmd

import (
	"fmt"
	"image/color"
	"os"

	"github.com/spf13/cobra"

	"github.com/nevisdale/chip8vm/internal/chip8vm"
	"github.com/nevisdale/chip8vm/internal/config"
	"github.com/nevisdale/chip8vm/internal/host"
	presenterebiten "github.com/nevisdale/chip8vm/internal/presenter/ebiten"
	presentersdl "github.com/nevisdale/chip8vm/internal/presenter/sdl"
)

var (
	flagMode       string
	flagTickrate   int
	flagBackend    string
	flagFgColor    string
	flagBgColor    string
	flagConfigPath string
)

var runCmd = &cobra.Command{
	Use:   "run [path/to/rom]",
	Short: "run the chip8vm interpreter",
	Args:  cobra.MaximumNArgs(1),
	RunE:  runChip8vm,
}

func init() {
	runCmd.Flags().StringVar(&flagMode, "mode", "", "octo, schip, or chip8 (default from config, else octo)")
	runCmd.Flags().IntVar(&flagTickrate, "tickrate", 0, "instructions per frame (default from config, else mode default)")
	runCmd.Flags().StringVar(&flagBackend, "backend", "", "ebiten or sdl (default from config, else ebiten)")
	runCmd.Flags().StringVar(&flagFgColor, "fg", "", "foreground color: a colornames entry or RRGGBB(AA) hex")
	runCmd.Flags().StringVar(&flagBgColor, "bg", "", "background color: a colornames entry or RRGGBB(AA) hex")
	runCmd.Flags().StringVar(&flagConfigPath, "config", "chip8vm.yaml", "path to an optional yaml config file")
}

func runChip8vm(cmd *cobra.Command, args []string) error {
	file, err := config.Load(flagConfigPath)
	if err != nil {
		return err
	}

	modeStr := firstNonEmpty(flagMode, file.Mode)
	mode, err := config.ResolveMode(modeStr)
	if err != nil {
		return err
	}

	tickrate := flagTickrate
	if tickrate == 0 {
		tickrate = file.Tickrate
	}

	backend := firstNonEmpty(flagBackend, file.Backend, "ebiten")

	fgColor, err := config.ResolveColor(firstNonEmpty(flagFgColor, file.Fg), color.White)
	if err != nil {
		return err
	}
	bgColor, err := config.ResolveColor(firstNonEmpty(flagBgColor, file.Bg), color.Black)
	if err != nil {
		return err
	}

	romPath := ""
	if len(args) == 1 {
		romPath = args[0]
	} else {
		romPath, err = pickROM()
		if err != nil {
			return err
		}
	}
	romData, err := os.ReadFile(romPath)
	if err != nil {
		return fmt.Errorf("read rom %s: %w", romPath, err)
	}

	vm := chip8vm.New(mode)
	if err := vm.Load(romData); err != nil {
		return fmt.Errorf("load rom: %w", err)
	}

	bridge := host.NewBridge()
	engine := host.NewEngine(vm, bridge, host.EngineConfig{Tickrate: tickrate})
	go engine.Run()

	switch backend {
	case "sdl":
		fgR, fgG, fgB, _ := colorToRGBA(fgColor)
		bgR, bgG, bgB, _ := colorToRGBA(bgColor)
		presenter, err := presentersdl.New(bridge, presentersdl.Config{
			Title: fmt.Sprintf("chip8vm (%s)", mode),
			Scale: 8,
			FgR:   fgR, FgG: fgG, FgB: fgB,
			BgR: bgR, BgG: bgG, BgB: bgB,
		})
		if err != nil {
			return fmt.Errorf("create sdl presenter: %w", err)
		}
		defer presenter.Close()
		presenter.RunLoop()
		return nil

	case "ebiten":
		presenter := presenterebiten.New(bridge, presenterebiten.Config{
			FgColor: fgColor,
			BgColor: bgColor,
			Title:   fmt.Sprintf("chip8vm (%s)", mode),
		})
		if err := presenter.Run(); err != nil {
			return fmt.Errorf("run ebiten presenter: %w", err)
		}
		return nil

	default:
		return fmt.Errorf("unknown backend %q", backend)
	}
}

func firstNonEmpty(vals ...string) string {
	for _, v := range vals {
		if v != "" {
			return v
		}
	}
	return ""
}

// colorToRGBA converts a resolved color.Color into the 8-bit-per-channel
// components the sdl presenter's Config takes.
func colorToRGBA(c color.Color) (r, g, b, a byte) {
	cr, cg, cb, ca := c.RGBA()
	return byte(cr >> 8), byte(cg >> 8), byte(cb >> 8), byte(ca >> 8)
}
