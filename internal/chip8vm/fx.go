package chip8vm

// stepMisc evaluates the FXxx group (spec.md §4.1's FX table).
func (vm *VM) stepMisc(x, nn uint8, keypad uint16, fetchPC, opcode uint16) *Fault {
	switch nn {
	case 0x07:
		vm.V[x] = vm.Delay

	case 0x0A:
		released := vm.keypadShadow &^ keypad
		if released == 0 {
			vm.PC -= 2 // re-execute until a key is released
			return nil
		}
		vm.V[x] = uint8(lowestSetBit(released))

	case 0x15:
		vm.Delay = vm.V[x]

	case 0x18:
		vm.Sound = vm.V[x]

	case 0x1E:
		vm.I += uint16(vm.V[x])

	case 0x29:
		vm.I = SmallFontAddr(vm.V[x])

	case 0x30:
		vm.I = LargeFontAddr(vm.V[x])

	case 0x33:
		if int(vm.I)+3 > MemSize {
			return newFault(FaultIRange, fetchPC, opcode)
		}
		val := vm.V[x]
		vm.Mem[vm.I] = val / 100
		vm.Mem[vm.I+1] = (val / 10) % 10
		vm.Mem[vm.I+2] = val % 10

	case 0x55:
		if int(vm.I)+int(x)+1 > MemSize {
			return newFault(FaultIRange, fetchPC, opcode)
		}
		for k := uint8(0); k <= x; k++ {
			vm.Mem[vm.I+uint16(k)] = vm.V[k]
		}
		if vm.Mode != ModeSCHIP {
			vm.I += uint16(x) + 1
		}

	case 0x65:
		if int(vm.I)+int(x)+1 > MemSize {
			return newFault(FaultIRange, fetchPC, opcode)
		}
		for k := uint8(0); k <= x; k++ {
			vm.V[k] = vm.Mem[vm.I+uint16(k)]
		}
		if vm.Mode != ModeSCHIP {
			vm.I += uint16(x) + 1
		}

	case 0x75:
		for k := uint8(0); k <= x; k++ {
			vm.Rpl[k] = vm.V[k]
		}

	case 0x85:
		for k := uint8(0); k <= x; k++ {
			vm.V[k] = vm.Rpl[k]
		}

	default:
		return newFault(FaultInvalidOpcode, fetchPC, opcode)
	}
	return nil
}

// lowestSetBit returns the index of the lowest set bit in v, or 0 if v==0
// (callers must check v!=0 themselves).
func lowestSetBit(v uint16) int {
	for i := 0; i < 16; i++ {
		if v&(1<<uint(i)) != 0 {
			return i
		}
	}
	return 0
}
