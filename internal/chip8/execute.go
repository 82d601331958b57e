package chip8

// exec advances machine state by one decoded instruction. It runs after
// the fetch has already moved pc past the instruction, so skips add 2 and
// CALL stores the already-advanced pc. The return value is the idle
// signal: true only when the program jumped to itself.
//
// Flag discipline: every op that writes VF does so after the Vx store, so
// when x == 0xF the flag result wins.
func (vm *VM) exec(in Instruction) bool {
	switch in.Kind {
	case Sys:
		// Jump to host machine code on the original hardware.
		vm.logger.Debug("ignoring SYS", "addr", in.Addr)
	case Clear:
		vm.gfx = [ScreenWidth * ScreenHeight]byte{}
		vm.drawFlag = true
	case Return:
		if vm.sp == 0 {
			vm.logger.Debug("RET with empty call stack")
			break
		}
		vm.pc = vm.stack[vm.sp]
		vm.sp--
	case Jump:
		idle := vm.pc-2 == in.Addr
		vm.pc = in.Addr
		if idle {
			return true
		}
	case Call:
		if vm.sp+1 < len(vm.stack) {
			vm.sp++
			vm.stack[vm.sp] = vm.pc
		} else {
			vm.logger.Debug("CALL with full call stack", "addr", in.Addr)
		}
		vm.pc = in.Addr
	case SkipEqualK:
		if vm.v[in.X] == in.K {
			vm.pc += 2
		}
	case SkipNotEqualK:
		if vm.v[in.X] != in.K {
			vm.pc += 2
		}
	case SkipEqual:
		if vm.v[in.X] == vm.v[in.Y] {
			vm.pc += 2
		}
	case SetK:
		vm.v[in.X] = in.K
	case AddK:
		// Wraps silently, VF untouched.
		vm.v[in.X] += in.K
	case Set:
		vm.v[in.X] = vm.v[in.Y]
	case Or:
		vm.v[in.X] |= vm.v[in.Y]
	case And:
		vm.v[in.X] &= vm.v[in.Y]
	case XOr:
		vm.v[in.X] ^= vm.v[in.Y]
	case Add:
		sum := uint16(vm.v[in.X]) + uint16(vm.v[in.Y])
		vm.v[in.X] = byte(sum)
		if sum > 0xFF {
			vm.v[0xF] = 1
		} else {
			vm.v[0xF] = 0
		}
	case Sub:
		x, y := vm.v[in.X], vm.v[in.Y]
		vm.v[in.X] = x - y
		if x > y {
			vm.v[0xF] = 1
		} else {
			vm.v[0xF] = 0
		}
	case ShiftRight:
		src := vm.v[in.Y]
		if vm.quirks.ShiftInPlace {
			src = vm.v[in.X]
		}
		vm.v[in.X] = src >> 1
		vm.v[0xF] = src & 0x01
	case SubInv:
		x, y := vm.v[in.X], vm.v[in.Y]
		vm.v[in.X] = y - x
		if y > x {
			vm.v[0xF] = 1
		} else {
			vm.v[0xF] = 0
		}
	case ShiftLeft:
		src := vm.v[in.Y]
		if vm.quirks.ShiftInPlace {
			src = vm.v[in.X]
		}
		vm.v[in.X] = src << 1
		vm.v[0xF] = src >> 7
	case SkipNotEqual:
		if vm.v[in.X] != vm.v[in.Y] {
			vm.pc += 2
		}
	case LoadI:
		vm.i = in.Addr
	case LongJump:
		base := vm.v[0]
		if vm.quirks.JumpWithVX {
			base = vm.v[in.X]
		}
		vm.pc = in.Addr + uint16(base)
	case Rand:
		vm.v[in.X] = vm.randByte() & in.K
	case Draw:
		vm.drawSprite(vm.v[in.X], vm.v[in.Y], in.N)
	case SkipPressed:
		if vm.keypad[vm.v[in.X]&0x0F] == 1 {
			vm.pc += 2
		}
	case SkipNotPressed:
		if vm.keypad[vm.v[in.X]&0x0F] != 1 {
			vm.pc += 2
		}
	case GetTimer:
		vm.v[in.X] = vm.delayTimer
	case WaitKey:
		vm.waitingKey = true
		vm.waitReg = in.X
	case SetTimer:
		vm.delayTimer = vm.v[in.X]
		vm.delayTick = timerPeriod
	case SetSoundTimer:
		vm.soundTimer = vm.v[in.X]
		vm.soundTick = timerPeriod
	case AddToI:
		sum := vm.i + uint16(vm.v[in.X])
		if vm.quirks.AddICarry {
			if sum > 0x0FFF {
				vm.v[0xF] = 1
			} else {
				vm.v[0xF] = 0
			}
		}
		vm.i = sum
	case LoadHexGlyph:
		vm.i = fontAddr + uint16(vm.v[in.X])*fontHeight
	case StoreBCD:
		x := vm.v[in.X]
		vm.memory[vm.i&0x0FFF] = x / 100
		vm.memory[(vm.i+1)&0x0FFF] = (x / 10) % 10
		vm.memory[(vm.i+2)&0x0FFF] = x % 10
	case StoreRegisters:
		for r := uint16(0); r <= uint16(in.X); r++ {
			vm.memory[(vm.i+r)&0x0FFF] = vm.v[r]
		}
		if !vm.quirks.KeepIndex {
			vm.i += uint16(in.X) + 1
		}
	case LoadRegisters:
		for r := uint16(0); r <= uint16(in.X); r++ {
			vm.v[r] = vm.memory[(vm.i+r)&0x0FFF]
		}
		if !vm.quirks.KeepIndex {
			vm.i += uint16(in.X) + 1
		}
	default:
		vm.logger.Debug("skipping unknown opcode", "instruction", in)
	}
	return false
}

// drawSprite XOR-blits an n-row sprite read from memory at I onto the
// framebuffer at (x, y). Pixels wrap around the opposite screen edge
// independently per axis. VF is set to 1 if any lit pixel was turned
// dark, 0 otherwise.
func (vm *VM) drawSprite(x, y, n byte) {
	collision := byte(0)
	for sy := uint16(0); sy < uint16(n); sy++ {
		row := vm.memory[(vm.i+sy)&0x0FFF]
		dy := (int(y) + int(sy)) % ScreenHeight
		for sx := 0; sx < 8; sx++ {
			px := (row >> (7 - sx)) & 0x01
			dx := (int(x) + sx) % ScreenWidth
			idx := dy*ScreenWidth + dx
			vm.gfx[idx] ^= px
			// Collided iff the pixel was lit and the XOR turned it dark.
			if vm.gfx[idx] == 0 && px == 1 {
				collision = 1
			}
		}
	}
	vm.v[0xF] = collision
	vm.drawFlag = true
}
