package host

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/nevisdale/chip8vm/internal/chip8vm"
)

func newRunningVM(t *testing.T, rom []byte) *chip8vm.VM {
	t.Helper()
	vm := chip8vm.New(chip8vm.ModeOCTO)
	require.NoError(t, vm.Load(rom))
	return vm
}

func TestDefaultTickrate(t *testing.T) {
	require.Equal(t, DefaultTickrateCHIP8, DefaultTickrate(chip8vm.ModeCHIP8))
	require.Equal(t, DefaultTickrateModern, DefaultTickrate(chip8vm.ModeSCHIP))
	require.Equal(t, DefaultTickrateModern, DefaultTickrate(chip8vm.ModeOCTO))
}

func TestNewEngineClampsTickrate(t *testing.T) {
	vm := newRunningVM(t, []byte{0x12, 0x00})

	e := NewEngine(vm, NewBridge(), EngineConfig{Tickrate: 0})
	require.Equal(t, DefaultTickrateModern, e.cfg.Tickrate)

	e = NewEngine(vm, NewBridge(), EngineConfig{Tickrate: 5000})
	require.Equal(t, 1000, e.cfg.Tickrate)
}

func TestEngineRunPublishesFramesAndExits(t *testing.T) {
	// 00E0 (clear, marks gfx dirty) then an infinite self-jump, so the
	// first burst marks gfx dirty and publishes a frame.
	vm := newRunningVM(t, []byte{0x00, 0xE0, 0x12, 0x02})
	bridge := NewBridge()
	e := NewEngine(vm, bridge, EngineConfig{Tickrate: 4})

	done := make(chan struct{})
	go func() {
		e.Run()
		close(done)
	}()

	require.Eventually(t, func() bool {
		_, ok := bridge.ConsumeFrame()
		return ok
	}, time.Second, time.Millisecond, "engine never published a frame")

	bridge.SetStatus(StatusExiting)
	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("engine did not exit after StatusExiting")
	}
}

func TestEngineRunHaltsOnFault(t *testing.T) {
	vm := newRunningVM(t, []byte{0x00, 0xFD}) // guest exit
	bridge := NewBridge()
	e := NewEngine(vm, bridge, EngineConfig{Tickrate: 1})

	done := make(chan struct{})
	go func() {
		e.Run()
		close(done)
	}()

	require.Eventually(t, func() bool {
		return bridge.Status() == StatusHalted
	}, time.Second, time.Millisecond, "engine never halted on guest exit")

	fault := bridge.LastFault()
	require.NotNil(t, fault)
	require.Equal(t, chip8vm.FaultGuestExit, fault.Kind)

	bridge.SetStatus(StatusExiting)
	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("engine did not exit after StatusExiting")
	}
}

func TestEngineRunPublishesDebugInfo(t *testing.T) {
	vm := newRunningVM(t, []byte{0x00, 0xE0, 0x12, 0x02}) // clear, then spin at 0x202
	bridge := NewBridge()
	e := NewEngine(vm, bridge, EngineConfig{Tickrate: 4})

	done := make(chan struct{})
	go func() {
		e.Run()
		close(done)
	}()

	require.Eventually(t, func() bool {
		info := bridge.DebugInfo()
		return info.Valid && info.PC == 0x202 && info.Opcode == 0x1202
	}, time.Second, time.Millisecond, "engine never published the spin instruction's debug info")

	bridge.SetStatus(StatusExiting)
	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("engine did not exit after StatusExiting")
	}
}

func TestEngineRunResetClearsFault(t *testing.T) {
	vm := newRunningVM(t, []byte{
		0xE0, 0x9E, // 0x200: skip the exit if key 0 is held
		0x00, 0xFD, // 0x202: guest exit
		0x12, 0x04, // 0x204: spin
	})
	bridge := NewBridge()
	e := NewEngine(vm, bridge, EngineConfig{Tickrate: 1})

	done := make(chan struct{})
	go func() {
		e.Run()
		close(done)
	}()

	require.Eventually(t, func() bool {
		return bridge.Status() == StatusHalted && bridge.LastFault() != nil
	}, time.Second, time.Millisecond, "engine never halted on guest exit")

	// holding key 0 makes the rerun after the reset skip the exit and spin.
	bridge.SetKeys(1 << 0)
	bridge.SetStatus(StatusResetting)
	require.Eventually(t, func() bool {
		return bridge.Status() == StatusRunning
	}, time.Second, time.Millisecond, "engine never left StatusResetting")
	require.Nil(t, bridge.LastFault(), "a reset must clear the fault that halted the previous run")

	bridge.SetStatus(StatusExiting)
	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("engine did not exit after StatusExiting")
	}
}

func TestEngineRunResets(t *testing.T) {
	vm := newRunningVM(t, []byte{0x60, 0x42, 0x12, 0x02}) // v0 = 0x42, then spin
	vm.V[5] = 0x99                                        // never written by the rom
	bridge := NewBridge()
	e := NewEngine(vm, bridge, EngineConfig{Tickrate: 2})

	done := make(chan struct{})
	go func() {
		e.Run()
		close(done)
	}()

	require.Eventually(t, func() bool {
		return vm.V[0] == 0x42
	}, time.Second, time.Millisecond)

	bridge.SetStatus(StatusResetting)
	require.Eventually(t, func() bool {
		return bridge.Status() == StatusRunning
	}, time.Second, time.Millisecond, "engine never left StatusResetting")
	// v0 is set again as soon as the rom reruns, so check a register the
	// rom never writes.
	require.Equal(t, uint8(0), vm.V[5], "reset zeroed the registers")

	bridge.SetStatus(StatusExiting)
	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("engine did not exit after StatusExiting")
	}
}
