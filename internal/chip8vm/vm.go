// Package chip8vm implements the CHIP-8 / SUPER-CHIP / XO-CHIP interpreter
// core: the fetch/decode/execute cycle, sprite drawing, and the ROM
// lifecycle. It has no knowledge of windows, audio devices, or files; see
// internal/host for the synchronization contract consumed by a presenter.
package chip8vm

const (
	MemSize    = 0x1000 // 4096
	EntryPoint = 0x200  // 512

	// RomMaxSize is the largest ROM that fits between EntryPoint and MemSize.
	RomMaxSize = MemSize - EntryPoint

	StackSize  = 16
	KeypadSize = 16

	// PhysWidth and PhysHeight are the physical framebuffer dimensions:
	// always 128x64 bits, packed MSB-first, 16 bytes per row.
	PhysWidth     = 128
	PhysHeight    = 64
	PhysRowBytes  = PhysWidth / 8
	LoResWidth    = 64
	LoResHeight   = 32
	HiResWidth    = PhysWidth
	HiResHeight   = PhysHeight
	smallFontBase = 0x000
	smallGlyphLen = 5
	largeFontBase = 0x050
	largeGlyphLen = 10
)

// Mode selects the quirk set used by the Interpreter.
type Mode int

const (
	ModeCHIP8 Mode = iota
	ModeSCHIP
	ModeOCTO
)

func (m Mode) String() string {
	switch m {
	case ModeCHIP8:
		return "chip8"
	case ModeSCHIP:
		return "schip"
	case ModeOCTO:
		return "octo"
	default:
		return "unknown"
	}
}

// ParseMode maps a config/flag string onto a Mode.
func ParseMode(s string) (Mode, bool) {
	switch s {
	case "chip8", "chip-8":
		return ModeCHIP8, true
	case "schip", "super-chip", "superchip":
		return ModeSCHIP, true
	case "octo", "xo-chip", "xochip":
		return ModeOCTO, true
	default:
		return ModeCHIP8, false
	}
}

// Framebuffer is the physical 128x64 bit-packed surface. In low-resolution
// mode guest row r occupies physical rows 2r and 2r+1, which are identical,
// and each byte's bit pairs (0,1), (2,3), (4,5), (6,7) are equal.
type Framebuffer [PhysHeight][PhysRowBytes]byte

// romOwnership distinguishes a copied buffer from a caller-owned one, per
// spec.md §4.4: "model this as a tagged handle, not a free-flag boolean".
type romOwnership int

const (
	romNone romOwnership = iota
	romOwned
	romBorrowed
)

type romHandle struct {
	data      []byte
	ownership romOwnership
}

func (r romHandle) loaded() bool { return r.ownership != romNone }

// VM is the passive data container described in spec.md §3. It holds no
// reference to a presenter, clock, or file system.
type VM struct {
	Mode Mode

	PC uint16
	I  uint16
	V  [16]uint8

	SP    uint8
	Stack [StackSize]uint16

	Delay uint8
	Sound uint8

	// keypadShadow is the bitmask observed on the previous successful Step;
	// FX0A compares it against the bitmask of the current Step to detect a
	// falling edge (key release), per spec.md §4.1 and the reference
	// semantics in original_source/core.c's octemu_eval FX0A case.
	keypadShadow uint16

	Hires    bool
	gfxDirty bool

	Mem [MemSize]byte
	Gfx Framebuffer

	Rpl [16]uint8

	rom romHandle
}

// New creates a zero-initialized VM in the given mode with fonts installed.
func New(mode Mode) *VM {
	vm := &VM{Mode: mode, PC: EntryPoint}
	vm.installFonts()
	return vm
}

func (vm *VM) installFonts() {
	copy(vm.Mem[smallFontBase:], smallFont[:])
	copy(vm.Mem[largeFontBase:], largeFont[:])
}

// Reset returns registers, stack, timers, input shadow, framebuffer, and
// memory above the font region to their initial values, then re-copies the
// ROM (if any) to EntryPoint. The loaded ROM's bytes and ownership tag
// survive a Reset, and so does the RPL bank: it is VM-lifetime storage per
// spec.md §6, not program state, so only ClearROM discards it.
func (vm *VM) Reset() {
	mode, rom, rpl := vm.Mode, vm.rom, vm.Rpl
	*vm = VM{Mode: mode, PC: EntryPoint, rom: rom, Rpl: rpl}
	vm.installFonts()
	if vm.rom.loaded() {
		copy(vm.Mem[EntryPoint:], vm.rom.data)
	}
}

// GfxDirty reports whether the framebuffer changed since the last Ack.
func (vm *VM) GfxDirty() bool { return vm.gfxDirty }

// AckGfx clears the dirty flag; only an external observer may call this.
func (vm *VM) AckGfx() { vm.gfxDirty = false }

func (vm *VM) markDirty() { vm.gfxDirty = true }

// Snapshot copies the current framebuffer into the caller-supplied buffer.
func (vm *VM) Snapshot(out *Framebuffer) { *out = vm.Gfx }

// SoundActive reports whether the sound timer is currently non-zero.
func (vm *VM) SoundActive() bool { return vm.Sound != 0 }

// TickTimers decrements Delay and Sound toward zero. Called once per frame
// by the host, never by Step.
func (vm *VM) TickTimers() {
	if vm.Delay > 0 {
		vm.Delay--
	}
	if vm.Sound > 0 {
		vm.Sound--
	}
}

// PeekInstruction returns the big-endian instruction at PC without
// executing it, for a debug/disassembly overlay. ok is false if PC is past
// the last fetchable address (MemSize-2); a PC below EntryPoint is still
// read.
func (vm *VM) PeekInstruction() (opcode uint16, ok bool) {
	if vm.PC > MemSize-2 {
		return 0, false
	}
	return uint16(vm.Mem[vm.PC])<<8 | uint16(vm.Mem[vm.PC+1]), true
}

// effDims returns the guest-visible surface dimensions for the current
// resolution mode.
func (vm *VM) effDims() (w, h int) {
	if vm.Hires {
		return HiResWidth, HiResHeight
	}
	return LoResWidth, LoResHeight
}
