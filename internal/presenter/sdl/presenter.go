// Package sdl is a secondary Presenter backend built on go-sdl2, offered
// as an alternative to the ebiten backend to demonstrate that the Host
// Bridge's Presenter boundary (spec.md §6) is swappable. Grounded on
// massung-CHIP-8's screen.go (render-to-texture, hi-res scaling) and
// deluziki-chip-8-emulator's display/input packages (window lifecycle,
// keymap table).
package sdl

import (
	"fmt"

	"github.com/veandco/go-sdl2/sdl"

	"github.com/nevisdale/chip8vm/internal/chip8vm"
	"github.com/nevisdale/chip8vm/internal/host"
)

// keyMap mirrors deluziki-chip-8-emulator/input's KeyMap table.
var keyMap = map[sdl.Keycode]uint8{
	sdl.K_1: 0x1, sdl.K_2: 0x2, sdl.K_3: 0x3, sdl.K_4: 0xC,
	sdl.K_q: 0x4, sdl.K_w: 0x5, sdl.K_e: 0x6, sdl.K_r: 0xD,
	sdl.K_a: 0x7, sdl.K_s: 0x8, sdl.K_d: 0x9, sdl.K_f: 0xE,
	sdl.K_z: 0xA, sdl.K_x: 0x0, sdl.K_c: 0xB, sdl.K_v: 0xF,
}

// Config configures the SDL window's scale and colors.
type Config struct {
	Title       string
	Scale       int32
	FgR, FgG, FgB byte
	BgR, BgG, BgB byte
}

// Presenter is the go-sdl2-backed host.Presenter.
type Presenter struct {
	bridge *host.Bridge
	cfg    Config

	window   *sdl.Window
	renderer *sdl.Renderer

	keys  uint16
	hires bool
}

// New initializes SDL video and returns a window-backed Presenter.
func New(bridge *host.Bridge, cfg Config) (*Presenter, error) {
	if cfg.Scale <= 0 {
		cfg.Scale = 8
	}
	if cfg.FgR == 0 && cfg.FgG == 0 && cfg.FgB == 0 && cfg.BgR == 0 && cfg.BgG == 0 && cfg.BgB == 0 {
		cfg.FgR, cfg.FgG, cfg.FgB = 255, 255, 255
	}
	if err := sdl.Init(sdl.INIT_VIDEO); err != nil {
		return nil, fmt.Errorf("init sdl: %w", err)
	}

	w := int32(chip8vm.LoResWidth) * cfg.Scale
	h := int32(chip8vm.LoResHeight) * cfg.Scale
	window, err := sdl.CreateWindow(cfg.Title, sdl.WINDOWPOS_CENTERED, sdl.WINDOWPOS_CENTERED,
		w, h, sdl.WINDOW_SHOWN|sdl.WINDOW_RESIZABLE)
	if err != nil {
		return nil, fmt.Errorf("create sdl window: %w", err)
	}

	renderer, err := sdl.CreateRenderer(window, -1, sdl.RENDERER_ACCELERATED)
	if err != nil {
		window.Destroy()
		return nil, fmt.Errorf("create sdl renderer: %w", err)
	}

	return &Presenter{bridge: bridge, cfg: cfg, window: window, renderer: renderer}, nil
}

// Close tears down the SDL window and subsystem.
func (p *Presenter) Close() {
	p.renderer.Destroy()
	p.window.Destroy()
	sdl.Quit()
}

// SetHires switches the drawn surface between 64x32 and 128x64, resizing
// the window to match so a hi-res frame isn't clipped to the lo-res extent
// New created it at.
func (p *Presenter) SetHires(hires bool) {
	if hires == p.hires {
		return
	}
	p.hires = hires
	p.window.SetSize(p.windowSize())
}

func (p *Presenter) windowSize() (int32, int32) {
	w, h := int32(chip8vm.LoResWidth), int32(chip8vm.LoResHeight)
	if p.hires {
		w, h = chip8vm.HiResWidth, chip8vm.HiResHeight
	}
	return w * p.cfg.Scale, h * p.cfg.Scale
}

// PumpEvents drains the SDL event queue, updating the key bitmask and
// returning false when the user closed the window.
func (p *Presenter) PumpEvents() bool {
	for event := sdl.PollEvent(); event != nil; event = sdl.PollEvent() {
		switch e := event.(type) {
		case *sdl.QuitEvent:
			return false
		case *sdl.KeyboardEvent:
			key, ok := keyMap[e.Keysym.Sym]
			if !ok {
				continue
			}
			if e.State == sdl.PRESSED {
				p.keys |= 1 << key
			} else {
				p.keys &^= 1 << key
			}
		}
	}
	return true
}

// PollKeys implements host.Presenter.
func (p *Presenter) PollKeys() uint16 { return p.keys }

// Render implements host.Presenter: scales the framebuffer to the window.
func (p *Presenter) Render(snap *chip8vm.Framebuffer) {
	p.renderer.SetDrawColor(p.cfg.BgR, p.cfg.BgG, p.cfg.BgB, 255)
	p.renderer.Clear()
	p.renderer.SetDrawColor(p.cfg.FgR, p.cfg.FgG, p.cfg.FgB, 255)

	scale := p.cfg.Scale
	step := int32(1)
	if !p.hires {
		step = 2 // sample every other physical pixel: lo-res pixels are doubled
	}
	for py := int32(0); py < chip8vm.PhysHeight; py += step {
		for px := int32(0); px < chip8vm.PhysWidth; px += step {
			if snap[py][px/8]&(0x80>>uint(px%8)) == 0 {
				continue
			}
			gx, gy := px/step, py/step
			rect := sdl.Rect{X: gx * scale, Y: gy * scale, W: scale, H: scale}
			p.renderer.FillRect(&rect)
		}
	}
	p.renderer.Present()
}

// PlayTone implements host.Presenter. This backend has no audio device
// wired up; a beep-capable build would open an sdl.AudioDeviceID here.
func (p *Presenter) PlayTone(active bool) {}

// RunLoop pumps events and the bridge once per display refresh until the
// window is closed or the bridge reports StatusExiting.
func (p *Presenter) RunLoop() {
	for p.PumpEvents() {
		if p.bridge.Status() == host.StatusExiting {
			return
		}
		host.Pump(p, p.bridge)
	}
	p.bridge.SetStatus(host.StatusExiting)
}
