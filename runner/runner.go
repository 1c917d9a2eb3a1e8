// Package runner drives a chip8.VM from a host clock: it decouples
// the virtual CPU clock from the host's paint cadence, honors
// breakpoints, and supports single-stepping.
package runner

import (
	"io"
	"sync"
	"time"

	"github.com/charmbracelet/log"

	"github.com/go-chip8/chip8vm/chip8"
)

// RepaintInterval is the wall-clock cadence at which the timer hook
// fires and a repaint is requested, per the 60 Hz timer/display rate.
const RepaintInterval = time.Second / 60

// Clock is the host collaborator that supplies monotonic time and
// schedules the Runner's next wakeup.
type Clock interface {
	Now() time.Time
	ScheduleNext(fn func())
}

// Breakpoints is the subset of debugger.Debugger the Runner consults
// before every decode. It must be safe to call without holding the
// VM's lock.
type Breakpoints interface {
	At(pc uint16) (ok bool)
}

// Surface is the host collaborator that receives repaint requests.
type Surface interface {
	Repaint(vm *chip8.VM)
}

// Runner drives vm's fetch/decode/execute loop from clock wakeups at
// a configurable instructions-per-second rate, decoupled from the
// host's repaint cadence.
type Runner struct {
	mu sync.Mutex

	vm     *chip8.VM
	clock  Clock
	beeper chip8.Beeper
	bp     Breakpoints
	surf   Surface
	logger *log.Logger

	ips int64

	running    bool
	generation uint64

	lastUpdate time.Time
	lastPaint  time.Time

	lastErr error
}

// Option configures a Runner at construction time.
type Option func(*Runner)

// WithSurface sets the Surface that receives repaint requests.
func WithSurface(s Surface) Option {
	return func(r *Runner) { r.surf = s }
}

// WithBeeper sets the Beeper driven by the 60 Hz timer hook.
func WithBeeper(b chip8.Beeper) Option {
	return func(r *Runner) { r.beeper = b }
}

// WithBreakpoints sets the breakpoint set consulted before decode.
func WithBreakpoints(b Breakpoints) Option {
	return func(r *Runner) { r.bp = b }
}

// WithLogger sets the structured logger used for progress and fatal
// error reporting. If unset, a logger writing to io.Discard is used.
func WithLogger(l *log.Logger) Option {
	return func(r *Runner) { r.logger = l }
}

// New returns a Runner driving vm from clock at the given
// instructions-per-second rate (typical 700-1000 for original games).
func New(vm *chip8.VM, clock Clock, ips int64, opts ...Option) *Runner {
	r := &Runner{
		vm:     vm,
		clock:  clock,
		ips:    ips,
		logger: log.New(io.Discard),
	}

	for _, opt := range opts {
		opt(r)
	}

	return r
}

// SetSpeed updates the Runner's target instructions-per-second rate.
func (r *Runner) SetSpeed(ips int64) {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.ips = ips
}

// LastError returns the fatal error (if any) that halted the Runner.
func (r *Runner) LastError() error {
	r.mu.Lock()
	defer r.mu.Unlock()

	return r.lastErr
}

// Running reports whether the Runner's wakeup loop is still active.
// It goes false after Stop, a breakpoint hit, or a fatal opcode.
func (r *Runner) Running() bool {
	r.mu.Lock()
	defer r.mu.Unlock()

	return r.running
}

// Start begins (or restarts) the wakeup loop. Calling Start while
// already running cancels the prior schedule and installs a new one.
func (r *Runner) Start() {
	r.mu.Lock()
	r.running = true
	r.generation++
	gen := r.generation
	r.lastUpdate = r.clock.Now()
	r.lastErr = nil
	r.mu.Unlock()

	r.clock.ScheduleNext(func() { r.wake(gen) })
}

// Stop cancels the Runner's outstanding schedule, if any. A wakeup
// that has already begun executing its tick batch completes it.
func (r *Runner) Stop() {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.running = false
	r.generation++
}

// Step stops the loop and runs exactly one Tick plus one TimerTick,
// followed by a single repaint.
func (r *Runner) Step() {
	r.mu.Lock()
	r.running = false
	r.generation++
	r.mu.Unlock()

	r.mu.Lock()
	err := r.vm.Tick()
	if err != nil {
		r.lastErr = err
		r.logger.Error("fatal opcode", "err", err)
	}
	r.vm.TimerTick(r.beeper)
	r.mu.Unlock()

	r.repaint()
}

// wake is invoked by the Clock. gen pins this wakeup to the Start/Stop
// epoch it was scheduled under; a Stop bumps the generation so a
// wakeup in flight from a superseded epoch becomes a no-op once it
// re-checks running.
func (r *Runner) wake(gen uint64) {
	r.mu.Lock()
	if !r.running || r.generation != gen {
		r.mu.Unlock()
		return
	}
	now := r.clock.Now()
	owed := int64(now.Sub(r.lastUpdate)) * r.ips / int64(time.Second)
	r.mu.Unlock()

	ticked := false

	for i := int64(0); i < owed; i++ {
		if r.bp != nil {
			r.mu.Lock()
			pc := r.vm.PC
			r.mu.Unlock()

			if r.bp.At(pc) {
				r.mu.Lock()
				r.running = false
				r.mu.Unlock()
				r.logger.Warn("breakpoint hit", "pc", pc)
				return
			}
		}

		r.mu.Lock()
		err := r.vm.Tick()
		r.mu.Unlock()

		ticked = true

		if err != nil {
			r.mu.Lock()
			r.running = false
			r.lastErr = err
			r.mu.Unlock()
			r.logger.Error("fatal opcode", "err", err)
			return
		}
	}

	if ticked {
		r.mu.Lock()
		r.lastUpdate = now
		r.mu.Unlock()
	}

	r.mu.Lock()
	duePaint := now.Sub(r.lastPaint) >= RepaintInterval
	if duePaint {
		r.vm.TimerTick(r.beeper)
		r.lastPaint = now
	}
	r.mu.Unlock()

	if duePaint {
		r.repaint()
	}

	r.mu.Lock()
	stillRunning := r.running && r.generation == gen
	r.mu.Unlock()

	if stillRunning {
		r.clock.ScheduleNext(func() { r.wake(gen) })
	}
}

func (r *Runner) repaint() {
	if r.surf == nil {
		return
	}

	r.surf.Repaint(r.vm)
}
