package host

import (
	"time"

	"github.com/nevisdale/chip8vm/internal/chip8vm"
)

const (
	frameInterval = time.Second / 60

	// DefaultTickrateCHIP8 and DefaultTickrateModern are the nominal
	// instructions-per-frame burst sizes from spec.md §5.
	DefaultTickrateCHIP8  = 15
	DefaultTickrateModern = 200

	pauseIdle = 200 * time.Millisecond
)

// EngineConfig configures an Engine's burst pacing.
type EngineConfig struct {
	// Tickrate is instructions executed per 1/60s frame, in [1, 1000].
	Tickrate int
}

// DefaultTickrate returns the nominal tickrate for mode, per spec.md §5.
func DefaultTickrate(mode chip8vm.Mode) int {
	if mode == chip8vm.ModeCHIP8 {
		return DefaultTickrateCHIP8
	}
	return DefaultTickrateModern
}

// Engine runs the burst/tick_timers/sleep loop against a VM, synchronizing
// with a Presenter through a Bridge. It never blocks indefinitely: FX0A is
// realized inside VM.Step as a PC rewind, so a burst that hits a waiting
// FX0A still returns promptly and the loop still polls Status and ticks
// timers between retries.
type Engine struct {
	vm     *chip8vm.VM
	bridge *Bridge
	cfg    EngineConfig
}

// NewEngine builds an Engine bound to vm and bridge.
func NewEngine(vm *chip8vm.VM, bridge *Bridge, cfg EngineConfig) *Engine {
	if cfg.Tickrate <= 0 {
		cfg.Tickrate = DefaultTickrate(vm.Mode)
	}
	if cfg.Tickrate > 1000 {
		cfg.Tickrate = 1000
	}
	return &Engine{vm: vm, bridge: bridge, cfg: cfg}
}

// Run loops until Status becomes StatusExiting. It is meant to be called
// from its own goroutine; cancellation latency is bounded by pauseIdle
// when paused/halted, or by one frameInterval burst otherwise.
func (e *Engine) Run() {
	for {
		switch e.bridge.Status() {
		case StatusExiting:
			return

		case StatusResetting:
			e.vm.Reset()
			e.bridge.PublishFrame(&chip8vm.Framebuffer{})
			e.bridge.clearFault()
			e.bridge.SetStatus(StatusRunning)

		case StatusPaused, StatusHalted:
			time.Sleep(pauseIdle)

		default: // StatusRunning
			e.runBurst()
		}
	}
}

func (e *Engine) runBurst() {
	start := time.Now()
	keys := e.bridge.Keys()

	for i := 0; i < e.cfg.Tickrate; i++ {
		if err := e.vm.Step(keys); err != nil {
			e.bridge.recordFault(err.(*chip8vm.Fault))
			break
		}
	}

	e.vm.TickTimers()
	e.bridge.SetSoundActive(e.vm.SoundActive())
	e.bridge.SetHires(e.vm.Hires)

	opcode, ok := e.vm.PeekInstruction()
	e.bridge.SetDebugInfo(DebugInfo{PC: e.vm.PC, Opcode: opcode, Valid: ok})

	if e.vm.GfxDirty() {
		var snap chip8vm.Framebuffer
		e.vm.Snapshot(&snap)
		e.bridge.PublishFrame(&snap)
		e.vm.AckGfx()
	}

	if remaining := frameInterval - time.Since(start); remaining > 0 {
		time.Sleep(remaining)
	}
}
