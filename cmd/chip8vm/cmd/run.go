package cmd

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/go-chip8/chip8vm/chip8"
	"github.com/go-chip8/chip8vm/debugger"
	"github.com/go-chip8/chip8vm/runner"
)

var (
	ips         int64
	duration    time.Duration
	breakpoints []string
)

// runCmd loads a ROM and drives it headlessly until it halts on a
// breakpoint, a fatal opcode, or the configured duration elapses.
var runCmd = &cobra.Command{
	Use:   "run path/to/rom",
	Short: "run a ROM headlessly and report its halt condition",
	Args:  cobra.ExactArgs(1),
	Run:   runROM,
}

func init() {
	runCmd.Flags().Int64Var(&ips, "ips", 700, "target instructions per second")
	runCmd.Flags().DurationVar(&duration, "duration", 2*time.Second, "maximum wall-clock time to run")
	runCmd.Flags().StringSliceVar(&breakpoints, "breakpoint", nil, "hex address to halt at (repeatable)")
}

func runROM(cmd *cobra.Command, args []string) {
	logger := log.New(os.Stderr)

	rom, err := os.ReadFile(args[0])
	if err != nil {
		logger.Error("could not read ROM", "path", args[0], "err", err)
		os.Exit(1)
	}

	vm := chip8.New()
	if err := vm.LoadROM(rom); err != nil {
		logger.Error("could not load ROM", "err", err)
		os.Exit(1)
	}

	dbg := debugger.New()
	for _, raw := range breakpoints {
		addr, err := strconv.ParseUint(raw, 16, 16)
		if err != nil {
			logger.Error("invalid breakpoint address", "value", raw, "err", err)
			os.Exit(1)
		}
		dbg.ToggleBreakpoint(uint16(addr))
	}

	clock := newWallClock(time.Millisecond)
	r := runner.New(vm, clock, ips, runner.WithBreakpoints(dbg), runner.WithLogger(logger))

	r.Start()

	deadline := time.Now().Add(duration)
	for r.Running() && time.Now().Before(deadline) {
		time.Sleep(time.Millisecond)
	}
	r.Stop()

	dumpHalt(logger, r, dbg, vm, deadline)
}

func dumpHalt(logger *log.Logger, r *runner.Runner, dbg *debugger.Debugger, vm *chip8.VM, deadline time.Time) {
	switch {
	case r.LastError() != nil:
		logger.Error("halted on fatal opcode", "err", r.LastError())
	case !time.Now().Before(deadline):
		logger.Info("halted on duration elapsed")
	default:
		logger.Info("halted on breakpoint", "pc", fmt.Sprintf("%#04x", vm.PC))
	}

	regs := dbg.RegistersView(vm)
	fmt.Printf("PC=%#04x I=%#04x SP=%d DT=%d ST=%d\n", regs.PC, regs.I, regs.SP, regs.DT, regs.ST)
	for i, v := range regs.V {
		fmt.Printf("V%X=%#02x ", i, v)
	}
	fmt.Println()

	for _, row := range dbg.MemoryView(vm) {
		marker := "  "
		if row.Current {
			marker = "->"
		}
		fmt.Printf("%s %#04x  %04X  %s\n", marker, row.Address, row.Word, row.Mnemonic)
	}
}

// wallClock implements runner.Clock against the real wall clock,
// scheduling wakeups at a fixed interval via time.AfterFunc.
type wallClock struct {
	interval time.Duration
}

func newWallClock(interval time.Duration) *wallClock {
	return &wallClock{interval: interval}
}

func (c *wallClock) Now() time.Time { return time.Now() }

func (c *wallClock) ScheduleNext(fn func()) {
	time.AfterFunc(c.interval, fn)
}
