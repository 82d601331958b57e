package cmd

import (
	"fmt"
	"log/slog"
	"os"
	"time"

	"github.com/faiface/pixel/pixelgl"
	"github.com/spf13/cobra"

	"github.com/finleyford/chipvm/internal/audio"
	"github.com/finleyford/chipvm/internal/chip8"
	"github.com/finleyford/chipvm/internal/config"
	"github.com/finleyford/chipvm/internal/pixel"
)

const hostFrameRate = 60

var (
	configPath string
	clockHz    float64
	debugLog   bool
)

// runCmd runs the chipvm virtual machine until the window closes or the
// program halts on a self-jump.
var runCmd = &cobra.Command{
	Use:   "run `path/to/rom`",
	Short: "run the chipvm emulator",
	Args:  cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		// pixelgl needs access to the main thread so this pattern is suggested
		pixelgl.Run(func() { runHost(args[0]) })
	},
}

func init() {
	runCmd.Flags().StringVar(&configPath, "config", "", "path to a TOML config file")
	runCmd.Flags().Float64Var(&clockHz, "clock", 0, "CPU clock rate in Hz (overrides config)")
	runCmd.Flags().BoolVar(&debugLog, "debug", false, "log unknown opcodes and other diagnostics")
}

func runHost(pathToROM string) {
	cfg := config.Default()
	if configPath != "" {
		var err error
		if cfg, err = config.Load(configPath); err != nil {
			fmt.Printf("\nerror loading config: %v\n", err)
			os.Exit(1)
		}
	}
	if clockHz > 0 {
		cfg.ClockHz = clockHz
	}

	opts := []chip8.Option{
		chip8.WithClockHz(cfg.ClockHz),
		chip8.WithQuirks(chip8.Quirks{
			ShiftInPlace: cfg.Quirks.ShiftInPlace,
			AddICarry:    cfg.Quirks.AddICarry,
			KeepIndex:    cfg.Quirks.KeepIndex,
			JumpWithVX:   cfg.Quirks.JumpWithVX,
		}),
	}
	if debugLog {
		opts = append(opts, chip8.WithLogger(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
			Level: slog.LevelDebug,
		}))))
	}

	vm := chip8.NewVM(opts...)

	rom, err := os.ReadFile(pathToROM)
	if err != nil {
		fmt.Printf("\nerror reading rom: %v\n", err)
		os.Exit(1)
	}
	if _, err := vm.LoadROM(rom); err != nil {
		fmt.Printf("\nerror loading rom: %v\n", err)
		os.Exit(1)
	}

	win, err := pixel.NewWindow("chipvm")
	if err != nil {
		fmt.Println(err)
		os.Exit(1)
	}

	// Beeping degrades gracefully on hosts without an audio device.
	beeper, err := audio.NewBeeper()
	if err != nil {
		fmt.Printf("audio unavailable: %v\n", err)
	}

	ticker := time.NewTicker(time.Second / hostFrameRate)
	defer ticker.Stop()

	last := time.Now()
	for range ticker.C {
		if win.Closed() {
			fmt.Println("exit signal detected, gracefully shutting down...")
			return
		}

		now := time.Now()
		idle := vm.Step(now.Sub(last).Seconds())
		last = now

		win.HandleKeyInput(vm.SetKey, vm.UnsetKey)

		if vm.DrawFlag() {
			win.DrawGraphics(vm.ScreenRows())
		} else {
			win.UpdateInput()
		}

		if beeper != nil {
			beeper.Update(vm.Beeping())
		}

		if idle {
			fmt.Println("rom halted, shutting down...")
			return
		}
	}
}
