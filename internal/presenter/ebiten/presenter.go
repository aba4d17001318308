// Package ebiten adapts the interpreter's Host Bridge to an ebiten window:
// it polls the keyboard, blits the framebuffer, and plays the sound-gate
// tone. Adapted from nevisdale-go-chip8's internal/renderer and
// internal/beep packages, generalized from the fixed 64x32 CHIP-8 surface
// to the mode-dependent 64x32/128x64 surface.
package ebiten

import (
	"bytes"
	"fmt"
	"image/color"
	"log"
	"math"
	"time"

	ebitenlib "github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/audio"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
	"github.com/hajimehoshi/ebiten/v2/inpututil"

	"github.com/nevisdale/chip8vm/internal/chip8vm"
	"github.com/nevisdale/chip8vm/internal/host"
)

// keyMapping is the standard layout from spec.md §6, to the row of number
// keys and QWERZ block, ported from nevisdale-go-chip8/internal/renderer.
var keyMapping = map[uint8]ebitenlib.Key{
	0x1: ebitenlib.Key1, 0x2: ebitenlib.Key2, 0x3: ebitenlib.Key3, 0xC: ebitenlib.Key4,
	0x4: ebitenlib.KeyQ, 0x5: ebitenlib.KeyW, 0x6: ebitenlib.KeyE, 0xD: ebitenlib.KeyR,
	0x7: ebitenlib.KeyA, 0x8: ebitenlib.KeyS, 0x9: ebitenlib.KeyD, 0xE: ebitenlib.KeyF,
	0xA: ebitenlib.KeyZ, 0x0: ebitenlib.KeyX, 0xB: ebitenlib.KeyC, 0xF: ebitenlib.KeyV,
}

const (
	sampleRate = 44100
	beepHz     = 440
	volumeStep = 0.2
)

// Config configures the window's colors and title.
type Config struct {
	FgColor color.Color
	BgColor color.Color
	Title   string
}

// Presenter is the ebiten-backed host.Presenter and ebiten.Game.
type Presenter struct {
	bridge *host.Bridge
	cfg    Config

	frame chip8vm.Framebuffer
	hires bool

	// debugOverlay toggles the PC/opcode readout, mirroring
	// massung-CHIP-8's debug.go single-step/log-window idea in miniature.
	debugOverlay bool

	player *audio.Player
}

// New creates a Presenter bound to bridge. Audio setup failures are
// logged and leave the tone silent rather than aborting startup.
func New(bridge *host.Bridge, cfg Config) *Presenter {
	p := &Presenter{bridge: bridge, cfg: cfg}
	if player, err := newTonePlayer(); err != nil {
		log.Printf("chip8vm: couldn't create an audio player: %s", err)
	} else {
		p.player = player
	}
	return p
}

func newTonePlayer() (*audio.Player, error) {
	const duration = time.Second
	numSamples := sampleRate * int(duration.Seconds())
	buf := make([]byte, numSamples*2)
	for i := 0; i < numSamples; i++ {
		a := math.Sin(2.0 * math.Pi * float64(beepHz) * float64(i) / float64(sampleRate))
		s := int16(a * math.MaxInt16)
		buf[2*i] = byte(s)
		buf[2*i+1] = byte(s >> 8)
	}
	ctx := audio.NewContext(sampleRate)
	return ctx.NewPlayer(bytes.NewReader(buf))
}

// PollKeys implements host.Presenter.
func (p *Presenter) PollKeys() uint16 {
	var mask uint16
	for chip8Key, ebitenKey := range keyMapping {
		if ebitenlib.IsKeyPressed(ebitenKey) {
			mask |= 1 << chip8Key
		}
	}
	return mask
}

// Render implements host.Presenter.
func (p *Presenter) Render(snap *chip8vm.Framebuffer) {
	p.frame = *snap
}

// PlayTone implements host.Presenter.
func (p *Presenter) PlayTone(active bool) {
	if p.player == nil {
		return
	}
	if active {
		if !p.player.IsPlaying() {
			p.player.Rewind()
			p.player.Play()
		}
		return
	}
	p.player.Pause()
}

// SetHires switches the drawn surface between 64x32 and 128x64.
func (p *Presenter) SetHires(hires bool) { p.hires = hires }

// Update implements ebiten.Game: one display-refresh tick of host.Pump.
func (p *Presenter) Update() error {
	if inpututil.IsKeyJustPressed(ebitenlib.KeyEscape) {
		return ebitenlib.Termination
	}
	if inpututil.IsKeyJustPressed(ebitenlib.KeyF1) {
		p.debugOverlay = !p.debugOverlay
	}
	host.Pump(p, p.bridge)
	return nil
}

// Draw implements ebiten.Game: blit the last-rendered framebuffer.
func (p *Presenter) Draw(screen *ebitenlib.Image) {
	w, h := p.surfaceSize()
	scale := 1
	if !p.hires {
		scale = 2
	}
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			py, px := y*scale, x*scale
			on := p.frame[py][px/8]&(0x80>>uint(px%8)) != 0
			c := p.cfg.BgColor
			if on {
				c = p.cfg.FgColor
			}
			screen.Set(x, y, c)
		}
	}
	if p.debugOverlay {
		p.drawDebugOverlay(screen)
	}
}

// drawDebugOverlay prints the next instruction's address and opcode, per
// spec.md §4.6's peek-without-executing feature (VM.PeekInstruction,
// published into host.Bridge.DebugInfo by the Engine each burst).
func (p *Presenter) drawDebugOverlay(screen *ebitenlib.Image) {
	info := p.bridge.DebugInfo()
	if !info.Valid {
		ebitenutil.DebugPrint(screen, "pc out of range")
		return
	}
	ebitenutil.DebugPrint(screen, fmt.Sprintf("pc=%#04x opcode=%#04x", info.PC, info.Opcode))
}

// Layout implements ebiten.Game.
func (p *Presenter) Layout(int, int) (int, int) {
	return p.surfaceSize()
}

func (p *Presenter) surfaceSize() (int, int) {
	if p.hires {
		return chip8vm.HiResWidth, chip8vm.HiResHeight
	}
	return chip8vm.LoResWidth, chip8vm.LoResHeight
}

// Run opens the window and blocks until the user quits.
func (p *Presenter) Run() error {
	w, h := p.surfaceSize()
	ebitenlib.SetWindowSize(w*6, h*6)
	ebitenlib.SetWindowResizingMode(ebitenlib.WindowResizingModeEnabled)
	ebitenlib.SetWindowTitle(p.cfg.Title)
	if err := ebitenlib.RunGame(p); err != nil {
		return fmt.Errorf("run ebiten presenter: %w", err)
	}
	return nil
}
