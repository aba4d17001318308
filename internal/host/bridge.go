// Package host implements the synchronization contract between the Engine
// goroutine (running the interpreter) and a Presenter (rendering frames
// and delivering key events), per spec.md §5.
package host

import (
	"sync/atomic"

	"github.com/nevisdale/chip8vm/internal/chip8vm"
)

// Status is the lock-free run state shared between Engine and Presenter.
type Status int32

const (
	StatusRunning Status = iota
	StatusPaused
	StatusResetting
	StatusHalted
	StatusExiting
)

func (s Status) String() string {
	switch s {
	case StatusRunning:
		return "running"
	case StatusPaused:
		return "paused"
	case StatusResetting:
		return "resetting"
	case StatusHalted:
		return "halted"
	case StatusExiting:
		return "exiting"
	default:
		return "unknown"
	}
}

// Bridge holds the atomics and double-buffered framebuffer handoff
// described in spec.md §5 and §9's "prefer a double-buffered handoff to a
// single mutex-protected snapshot" design note. Only the Presenter writes
// Status, except the Engine writing StatusHalted on a fault.
type Bridge struct {
	status atomic.Int32
	keys   atomic.Uint32 // low 16 bits hold the key bitmask
	sound  atomic.Bool
	hires  atomic.Bool

	frame      atomic.Pointer[chip8vm.Framebuffer]
	frameReady atomic.Bool
	lastFault  atomic.Pointer[chip8vm.Fault]
	debugInfo  atomic.Pointer[DebugInfo]
}

// DebugInfo is a snapshot of the next instruction to be fetched, published
// by the Engine every burst for the benefit of a presenter's debug overlay
// (spec.md §4.6's peek-without-executing feature). Valid is false once the
// VM's PC has run off the end of memory, mirroring VM.PeekInstruction's ok.
type DebugInfo struct {
	PC     uint16
	Opcode uint16
	Valid  bool
}

// NewBridge returns a Bridge in StatusRunning with an empty front buffer.
func NewBridge() *Bridge {
	b := &Bridge{}
	b.status.Store(int32(StatusRunning))
	b.frame.Store(&chip8vm.Framebuffer{})
	return b
}

func (b *Bridge) Status() Status            { return Status(b.status.Load()) }
func (b *Bridge) SetStatus(s Status)        { b.status.Store(int32(s)) }
func (b *Bridge) LastFault() *chip8vm.Fault { return b.lastFault.Load() }

// SetKeys is called by the Presenter on every key event; it replaces the
// whole 16-bit bitmask with acquire-release ordering (via atomic.Uint32).
func (b *Bridge) SetKeys(mask uint16) { b.keys.Store(uint32(mask)) }

// Keys is read once per burst by the Engine.
func (b *Bridge) Keys() uint16 { return uint16(b.keys.Load()) }

// SetSoundActive is written by the Engine after each burst.
func (b *Bridge) SetSoundActive(active bool) { b.sound.Store(active) }

// SoundActive is read once per frame by the Presenter.
func (b *Bridge) SoundActive() bool { return b.sound.Load() }

// SetHires is written by the Engine whenever the VM's resolution changes.
func (b *Bridge) SetHires(hires bool) { b.hires.Store(hires) }

// Hires is read once per frame by the Presenter to size its surface.
func (b *Bridge) Hires() bool { return b.hires.Load() }

// SetDebugInfo is written by the Engine after each burst.
func (b *Bridge) SetDebugInfo(d DebugInfo) { b.debugInfo.Store(&d) }

// DebugInfo is read by a presenter's optional debug overlay. It returns the
// zero value (Valid == false) before the first burst has run.
func (b *Bridge) DebugInfo() DebugInfo {
	if d := b.debugInfo.Load(); d != nil {
		return *d
	}
	return DebugInfo{}
}

// PublishFrame is called by the Engine after a burst in which gfx became
// dirty. It flips the shared pointer to a fresh copy of snap and raises
// the frame-ready flag; no lock is taken.
func (b *Bridge) PublishFrame(snap *chip8vm.Framebuffer) {
	cp := *snap
	b.frame.Store(&cp)
	b.frameReady.Store(true)
}

// ConsumeFrame is called by the Presenter. If a new frame is ready it
// returns the latest snapshot and true, clearing the ready flag;
// otherwise it returns false and the Presenter should keep its previous
// frame.
func (b *Bridge) ConsumeFrame() (*chip8vm.Framebuffer, bool) {
	if !b.frameReady.CompareAndSwap(true, false) {
		return nil, false
	}
	return b.frame.Load(), true
}

func (b *Bridge) recordFault(f *chip8vm.Fault) {
	b.lastFault.Store(f)
	b.status.Store(int32(StatusHalted))
}

// clearFault drops any recorded fault. Called on a reset, since a fault that
// halted the previous run no longer describes the VM once it restarts.
func (b *Bridge) clearFault() { b.lastFault.Store(nil) }
