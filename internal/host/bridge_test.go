package host

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/nevisdale/chip8vm/internal/chip8vm"
)

func TestNewBridge(t *testing.T) {
	b := NewBridge()
	require.Equal(t, StatusRunning, b.Status())
	require.Nil(t, b.LastFault())
	_, ok := b.ConsumeFrame()
	require.False(t, ok, "no frame is ready until PublishFrame is called")
}

func TestBridgeKeysRoundTrip(t *testing.T) {
	b := NewBridge()
	require.Equal(t, uint16(0), b.Keys())
	b.SetKeys(0xBEEF)
	require.Equal(t, uint16(0xBEEF), b.Keys())
}

func TestBridgeSoundAndHires(t *testing.T) {
	b := NewBridge()
	require.False(t, b.SoundActive())
	b.SetSoundActive(true)
	require.True(t, b.SoundActive())

	require.False(t, b.Hires())
	b.SetHires(true)
	require.True(t, b.Hires())
}

func TestBridgeFramePublishAndConsume(t *testing.T) {
	b := NewBridge()

	var snap chip8vm.Framebuffer
	snap[0][0] = 0xFF
	b.PublishFrame(&snap)

	got, ok := b.ConsumeFrame()
	require.True(t, ok)
	require.Equal(t, byte(0xFF), got[0][0])

	// the ready flag is one-shot: a second consume without a new publish
	// reports nothing new.
	_, ok = b.ConsumeFrame()
	require.False(t, ok)

	// mutating the caller's buffer after PublishFrame must not affect the
	// copy the bridge already stored.
	snap[0][0] = 0x00
	require.Equal(t, byte(0xFF), got[0][0])

	// a new publish carries the mutated buffer.
	b.PublishFrame(&snap)
	got, ok = b.ConsumeFrame()
	require.True(t, ok)
	require.Equal(t, byte(0x00), got[0][0])
}

func TestBridgeDebugInfo(t *testing.T) {
	b := NewBridge()
	require.Equal(t, DebugInfo{}, b.DebugInfo(), "zero value before the first burst publishes one")

	b.SetDebugInfo(DebugInfo{PC: 0x200, Opcode: 0x00E0, Valid: true})
	require.Equal(t, DebugInfo{PC: 0x200, Opcode: 0x00E0, Valid: true}, b.DebugInfo())
}

func TestBridgeRecordFault(t *testing.T) {
	b := NewBridge()
	f := &chip8vm.Fault{Kind: chip8vm.FaultGuestExit, PC: 0x200}
	b.recordFault(f)
	require.Equal(t, StatusHalted, b.Status())
	require.Same(t, f, b.LastFault())
}

func TestStatusString(t *testing.T) {
	for _, tc := range []struct {
		s    Status
		want string
	}{
		{StatusRunning, "running"},
		{StatusPaused, "paused"},
		{StatusResetting, "resetting"},
		{StatusHalted, "halted"},
		{StatusExiting, "exiting"},
		{Status(99), "unknown"},
	} {
		require.Equal(t, tc.want, tc.s.String())
	}
}
