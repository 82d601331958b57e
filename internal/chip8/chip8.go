// Package chip8 implements the core of a CHIP-8 virtual machine: machine
// state, instruction decoding, the execute engine, and the sub-step timing
// driver. The package has no host concerns — rendering, input, and audio
// wrap it from the outside, feeding wall-clock deltas into Step and
// reading the framebuffer back between calls.
//
// CHIP-8 was originally implemented on 4K systems like the Telmac 1800 and
// Cosmac VIP where the interpreter itself occupied the first 512 bytes of
// memory (up to 0x200). Running natively outside that 4K space, we only
// keep the built-in font down there.
package chip8

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"math"
	"math/rand"
)

//		System memory map
// 		+---------------+= 0xFFF (4095) End Chip-8 RAM
// 		|               |
// 		| 0x200 to 0xFFF|
// 		|     Chip-8    |
// 		| Program / Data|
// 		|     Space     |
// 		|               |
// 		+---------------+= 0x200 (512) Start of most Chip-8 programs
// 		| 0x000 to 0x1FF|
// 		|  Font sprites |
// 		+---------------+= 0x000 (0) Begin Chip-8 RAM

const (
	ramSize      = 4096
	programStart = 0x200
	maxROMSize   = ramSize - programStart

	// ScreenWidth and ScreenHeight are the framebuffer dimensions in pixels.
	ScreenWidth  = 64
	ScreenHeight = 32

	// DefaultClockHz is the nominal CPU rate Step subdivides against.
	DefaultClockHz = 600

	timerHz     = 60
	timerPeriod = 1.0 / timerHz
)

// ErrOversizeROM is returned by LoadROM when the image does not fit in the
// program space (0x200-0xFFF, 3584 bytes).
var ErrOversizeROM = errors.New("rom image larger than available ram")

// Quirks selects between interpreter family behaviors where the historic
// implementations disagree. The zero value is classic COSMAC VIP.
type Quirks struct {
	// ShiftInPlace makes 8XY6/8XYE shift VX rather than VY.
	ShiftInPlace bool
	// AddICarry makes FX1E set VF when I leaves the addressable range,
	// as the Amiga-era interpreters did.
	AddICarry bool
	// KeepIndex makes FX55/FX65 leave I unchanged (SCHIP convention).
	KeepIndex bool
	// JumpWithVX makes BNNN use VX instead of V0 (SCHIP convention).
	JumpWithVX bool
}

// VM is a CHIP-8 virtual machine at some point in execution. All state
// transitions happen inside Step, LoadROM, SetKey, UnsetKey, DrawFlag
// (which clears the redraw flag), or NewVM; the
// VM has no internal synchronization, so callers driving it from multiple
// goroutines must serialize externally.
type VM struct {
	// Chip-8 system memory, see memory map above
	memory [ramSize]byte

	// 8-bit general purpose registers V0-VF. VF doubles as the flag
	// register for carry, borrow, shift and draw-collision results.
	v [16]byte

	// Index register. Normally within 0x000-0xFFF; ADD I, Vx may push it
	// past 0xFFF, so memory accesses mask back into range.
	i uint16

	// Program counter
	pc uint16

	// Return address stack. CALL pre-increments sp then writes, RET
	// reads then decrements, so the first call lands at index 1.
	stack [256]uint16
	sp    int

	// Framebuffer, row-major 64x32, one byte per pixel, each 0 or 1
	gfx [ScreenWidth * ScreenHeight]byte

	// Keypad is HEX based: 0x0-0xF, one byte per key, each 0 or 1
	//  1  2  3  C
	//  4  5  6  D
	//  7  8  9  E
	//  A  0  B  F
	keypad [16]byte

	// Delay and sound timers decrement at 60Hz while nonzero. Each has
	// a fractional accumulator (seconds until next decrement) so the
	// 60Hz cadence is independent of both CPU clock and host frame rate.
	delayTimer byte
	delayTick  float64
	soundTimer byte
	soundTick  float64

	// When FX0A suspends execution, waitingKey is set and waitReg holds
	// the register the next key-down is delivered to.
	waitingKey bool
	waitReg    byte

	// Set when the framebuffer changed (CLS or DRW) so hosts can skip
	// redraws on quiet frames.
	drawFlag bool

	clockHz  float64
	quirks   Quirks
	randByte func() byte
	logger   *slog.Logger
}

// Option configures a VM at construction.
type Option func(*VM)

// WithClockHz overrides the nominal CPU rate used by Step.
func WithClockHz(hz float64) Option {
	return func(vm *VM) {
		if hz > 0 {
			vm.clockHz = hz
		}
	}
}

// WithQuirks selects non-classic interpreter behaviors.
func WithQuirks(q Quirks) Option {
	return func(vm *VM) { vm.quirks = q }
}

// WithRandSource replaces the byte source used by CXNN, letting tests
// drive randomness deterministically.
func WithRandSource(src func() byte) Option {
	return func(vm *VM) {
		if src != nil {
			vm.randByte = src
		}
	}
}

// WithLogger sets the logger used for debug-level diagnostics (unknown
// opcodes, SYS, stack underflow).
func WithLogger(l *slog.Logger) Option {
	return func(vm *VM) {
		if l != nil {
			vm.logger = l
		}
	}
}

// NewVM returns a VM at reset: all state zero except the program counter
// at 0x200 and the font sprites loaded into low memory.
func NewVM(opts ...Option) *VM {
	vm := VM{
		pc:       programStart,
		clockHz:  DefaultClockHz,
		randByte: func() byte { return byte(rand.Intn(256)) },
		logger:   slog.New(slog.NewTextHandler(io.Discard, nil)),
	}
	copy(vm.memory[fontAddr:], fontSet[:])
	for _, opt := range opts {
		opt(&vm)
	}
	return &vm
}

// LoadROM copies a program image into memory starting at 0x200 and returns
// the number of bytes accepted. Images larger than the program space fail
// with ErrOversizeROM and leave memory untouched.
func (vm *VM) LoadROM(rom []byte) (int, error) {
	if len(rom) > maxROMSize {
		return 0, fmt.Errorf("%w: %d bytes, max %d", ErrOversizeROM, len(rom), maxROMSize)
	}
	copy(vm.memory[programStart:], rom)
	return len(rom), nil
}

// ReadROM reads a program image to EOF and loads it. Read failures and
// oversize images surface through the same single error path.
func (vm *VM) ReadROM(r io.Reader) (int, error) {
	rom, err := io.ReadAll(r)
	if err != nil {
		return 0, fmt.Errorf("reading rom: %w", err)
	}
	return vm.LoadROM(rom)
}

// SetKey marks a keypad key 0x0-0xF as pressed. If the VM is suspended on
// FX0A, the key code is stored in the awaited register and execution
// resumes on the next Step.
func (vm *VM) SetKey(idx byte) {
	if idx > 0xF {
		return
	}
	vm.keypad[idx] = 1
	if vm.waitingKey {
		vm.v[vm.waitReg] = idx
		vm.waitingKey = false
	}
}

// UnsetKey marks a keypad key 0x0-0xF as released.
func (vm *VM) UnsetKey(idx byte) {
	if idx > 0xF {
		return
	}
	vm.keypad[idx] = 0
}

// Beeping reports whether the sound timer is running, i.e. the host should
// be producing a tone.
func (vm *VM) Beeping() bool {
	return vm.soundTimer > 0
}

// DrawFlag reports whether the framebuffer changed since the last call and
// clears the flag.
func (vm *VM) DrawFlag() bool {
	f := vm.drawFlag
	vm.drawFlag = false
	return f
}

// ScreenRows returns the framebuffer as 32 rows of 64 bytes, each byte 0
// (dark) or 1 (lit), top row first. The rows alias VM memory and are only
// valid to read between Step calls.
func (vm *VM) ScreenRows() [][]byte {
	rows := make([][]byte, ScreenHeight)
	for y := 0; y < ScreenHeight; y++ {
		rows[y] = vm.gfx[y*ScreenWidth : (y+1)*ScreenWidth]
	}
	return rows
}

// DumpRAM writes the full 4096-byte memory image, font and program
// included.
func (vm *VM) DumpRAM(w io.Writer) error {
	_, err := w.Write(vm.memory[:])
	return err
}

// Step advances the VM by dt seconds of emulated time, subdividing into
// sub-steps at the nominal clock rate so game speed stays stable under a
// jittery host frame cadence. Each sub-step advances the 60Hz timers, then
// fetches and executes one instruction; if the VM is suspended waiting for
// a key, Step returns after that sub-step's timer advance and the remaining
// sub-steps are not run. Returns true when the program has gone idle
// (jumped to itself), which hosts use as the halt signal.
func (vm *VM) Step(dt float64) bool {
	if dt <= 0 {
		return false
	}
	n := int(math.Round(vm.clockHz * dt))
	if n < 1 {
		n = 1
	}
	ddt := dt / float64(n)

	for s := 0; s < n; s++ {
		vm.timeStep(ddt)
		if vm.waitingKey {
			return false
		}
		op := Opcode(uint16(vm.memory[vm.pc&0x0FFF])<<8 | uint16(vm.memory[(vm.pc+1)&0x0FFF]))
		vm.pc += 2
		if vm.exec(Decode(op)) {
			return true
		}
	}
	return false
}

// timeStep advances both timer accumulators by ddt seconds. On crossing
// zero the timer decrements and the accumulator re-arms to exactly one
// 60Hz period, bounding drift per decrement.
func (vm *VM) timeStep(ddt float64) {
	if vm.delayTimer > 0 {
		vm.delayTick -= ddt
		if vm.delayTick <= 0 {
			vm.delayTimer--
			vm.delayTick = timerPeriod
		}
	}
	if vm.soundTimer > 0 {
		vm.soundTick -= ddt
		if vm.soundTick <= 0 {
			vm.soundTimer--
			vm.soundTick = timerPeriod
		}
	}
}
