package chip8vm

import "fmt"

// Load copies data into the VM as an owned ROM: the VM's own copy survives
// any mutation of the caller's slice. Fails if a ROM is already loaded or
// data's size is outside [2, RomMaxSize].
func (vm *VM) Load(data []byte) error {
	if err := vm.checkLoadable(data); err != nil {
		return err
	}
	owned := make([]byte, len(data))
	copy(owned, data)
	vm.rom = romHandle{data: owned, ownership: romOwned}
	vm.Reset()
	return nil
}

// Attach records data as a borrowed ROM: the VM keeps no private copy of
// it and never frees it. Each Reset copies data's current bytes into
// memory at EntryPoint, so a mutation of data shows up only after the next
// Reset. The caller must not mutate data for the lifetime of the VM's use
// of it.
func (vm *VM) Attach(data []byte) error {
	if err := vm.checkLoadable(data); err != nil {
		return err
	}
	vm.rom = romHandle{data: data, ownership: romBorrowed}
	vm.Reset()
	return nil
}

func (vm *VM) checkLoadable(data []byte) error {
	if vm.rom.loaded() {
		return fmt.Errorf("chip8vm: a rom is already loaded")
	}
	if len(data) < 2 || len(data) > RomMaxSize {
		return fmt.Errorf("chip8vm: rom size %d out of range [2, %d]", len(data), RomMaxSize)
	}
	return nil
}

// ClearROM discards the loaded ROM (owned bytes are dropped for garbage
// collection; borrowed bytes are simply forgotten) and the RPL bank, then
// triggers a Reset.
func (vm *VM) ClearROM() {
	vm.rom = romHandle{}
	vm.Rpl = [16]uint8{}
	vm.Reset()
}

// HasROM reports whether a ROM is currently associated with the VM.
func (vm *VM) HasROM() bool { return vm.rom.loaded() }

// ROMOwned reports whether the currently loaded ROM's bytes are owned by
// the VM (as opposed to borrowed from the caller).
func (vm *VM) ROMOwned() bool { return vm.rom.ownership == romOwned }
