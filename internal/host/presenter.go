package host

import "github.com/nevisdale/chip8vm/internal/chip8vm"

// Presenter is the external interface consumed by the Engine's
// counterpart: a renderer/keyboard/audio frontend. spec.md §6 names this
// the presenter; any GUI backend can implement it and drive a Bridge.
type Presenter interface {
	// PollKeys returns the current 16-bit key bitmask.
	PollKeys() uint16
	// Render draws the given framebuffer snapshot.
	Render(snap *chip8vm.Framebuffer)
	// PlayTone enables or disables the sound gate's audible tone.
	PlayTone(active bool)
	// SetHires switches the drawn surface between 64x32 and 128x64.
	SetHires(hires bool)
}

// Pump runs one Presenter frame tick against bridge: it reads keys, pushes
// them to the bridge, consumes a ready frame if any, and reflects the
// sound gate. Call this once per display refresh.
func Pump(p Presenter, b *Bridge) {
	b.SetKeys(p.PollKeys())
	p.SetHires(b.Hires())
	if snap, ok := b.ConsumeFrame(); ok {
		p.Render(snap)
	}
	p.PlayTone(b.SoundActive())
}
