// SPDX-License-Identifier: EPL-2.0

// Command sampbx plays a list of audio files through the sample engine,
// either live on the default sound card or rendered offline to a WAV file.
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/ik5/sampbx"
	"github.com/ik5/sampbx/cursor"
	"github.com/ik5/sampbx/engine"
	"github.com/ik5/sampbx/formats/wav"
	"github.com/ik5/sampbx/internal/ui"
	"github.com/ik5/sampbx/notify"
	"github.com/ik5/sampbx/order"
	"github.com/ik5/sampbx/output"
	"github.com/ik5/sampbx/store"
)

const (
	deviceBuffer = 50 * time.Millisecond
	pollInterval = 20 * time.Millisecond
	outBitDepth  = 16
)

var errNoFiles = errors.New("no input files")

type options struct {
	rate     int
	channels int
	block    int
	loop     cursor.LoopMode
	order    order.Mode
	level    float64
	out      string
	seconds  float64
	tui      bool
	logFile  string
	maxFiles int
	seed     uint64
	files    []string
}

func parseFlags(args []string, stderr io.Writer) (*options, error) {
	fs := flag.NewFlagSet("sampbx", flag.ContinueOnError)
	fs.SetOutput(stderr)
	fs.Usage = func() {
		fmt.Fprintf(stderr, "usage: sampbx [flags] file...\n")
		fs.PrintDefaults()
	}

	opts := &options{}
	fs.IntVar(&opts.rate, "rate", 48000, "Output sample rate in Hz")
	fs.IntVar(&opts.channels, "channels", 2, "Output channel count")
	fs.IntVar(&opts.block, "block", 512, "Render block size in frames")
	loop := fs.String("loop", "none", "Loop mode: none, fade:SEC, trigger:HZ or gap:SEC")
	mode := fs.String("order", "ordinal", "Playback order: ordinal, shuffle or random")
	fs.Float64Var(&opts.level, "level", float64(engine.DefaultLevel), "Output level between 0 and 1")
	fs.StringVar(&opts.out, "out", "", "Render offline to this WAV file instead of playing")
	fs.Float64Var(&opts.seconds, "seconds", 0, "Stop after this many seconds (required with -out when looping)")
	fs.BoolVar(&opts.tui, "tui", false, "Show the interactive status screen")
	fs.StringVar(&opts.logFile, "log", "", "Log file path (default: stderr)")
	fs.IntVar(&opts.maxFiles, "max-files", store.DefaultMaxFiles, "Maximum number of files to load")
	fs.Uint64Var(&opts.seed, "seed", 0, "Seed for shuffle and random order (0 picks one)")

	if err := fs.Parse(args); err != nil {
		return nil, err
	}

	var err error
	if opts.loop, err = cursor.ParseLoopMode(*loop); err != nil {
		return nil, fmt.Errorf("-loop: %w", err)
	}
	if opts.order, err = order.ParseMode(*mode); err != nil {
		return nil, fmt.Errorf("-order: %w", err)
	}
	if opts.seconds < 0 {
		return nil, errors.New("-seconds: must not be negative")
	}
	if opts.out != "" && opts.tui {
		return nil, errors.New("-out and -tui cannot be combined")
	}

	opts.files = fs.Args()
	if len(opts.files) == 0 {
		fs.Usage()
		return nil, errNoFiles
	}
	if opts.seed == 0 {
		opts.seed = uint64(time.Now().UnixNano())
	}

	return opts, nil
}

func (o *options) config() engine.Config {
	cfg := engine.DefaultConfig()
	cfg.SampleRate = o.rate
	cfg.Channels = o.channels
	cfg.MaxBlock = o.block
	cfg.Seed = o.seed
	return cfg
}

// renderFrames is how many frames an offline render may produce. Without
// -seconds a looping engine would never stop, so it falls back to the
// longest possible pass over the regions.
func (o *options) renderFrames(loaded int) int {
	if o.seconds > 0 {
		return int(o.seconds * float64(o.rate))
	}
	if o.loop.Looping() || o.order == order.Random {
		return int(store.DefaultMaxLength.Seconds()) * o.rate
	}
	return max(loaded, 1)
}

func newEngine(o *options, logger *log.Logger) (*engine.Engine, error) {
	e, err := engine.New(o.config(),
		store.WithLogger(logger),
		store.WithMaxFiles(o.maxFiles),
	)
	if err != nil {
		return nil, err
	}

	if err := e.SetLoop(o.loop); err != nil {
		return nil, err
	}
	if err := e.SetOrder(o.order); err != nil {
		return nil, err
	}
	if err := e.SetLevel(float32(o.level)); err != nil {
		return nil, err
	}

	return e, nil
}

func printReport(w io.Writer, r *store.Report, rate int) {
	fmt.Fprintf(w, "Loaded %d of %d files, %s\n", r.Loaded, r.Requested, r.Duration(rate).Round(time.Millisecond))
	for _, fe := range r.Skipped {
		fmt.Fprintf(w, "  skipped %s\n", fe)
	}
	for _, i := range r.Truncated {
		fmt.Fprintf(w, "  truncated file %d to %s\n", i, store.DefaultMaxLength)
	}
}

func render(e *engine.Engine, o *options, frames int) error {
	buf, err := sampbx.Bounce(e, o.renderFrames(frames))
	if err != nil {
		return err
	}

	f, err := os.Create(o.out)
	if err != nil {
		return fmt.Errorf("creating output: %w", err)
	}
	defer func() { _ = f.Close() }()

	if err := wav.Write(f, buf, outBitDepth); err != nil {
		return fmt.Errorf("writing %s: %w", o.out, err)
	}

	log.Printf("Wrote %s (%d frames)", o.out, buf.Frames())
	return f.Close()
}

func play(ctx context.Context, e *engine.Engine, o *options) error {
	dev, err := output.Open(e, e.Config(), deviceBuffer)
	if err != nil {
		return err
	}
	defer func() { _ = dev.Close() }()

	log.Printf("Audio output ready, latency %s", dev.Latency())
	// drop the load notification; the poller watches playback only
	e.Notifications().Consume()
	e.Play()

	if o.tui {
		return ui.Run(e)
	}

	if o.seconds > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, time.Duration(o.seconds*float64(time.Second)))
		defer cancel()
	}

	ctx, stop := context.WithCancel(ctx)
	defer stop()

	poller := notify.NewPoller(e.Notifications())
	unsubscribe := poller.Subscribe(func() {
		st := e.Store()
		if i, ok := st.ByOrdinal(e.CurrentIndex()); ok {
			log.Printf("Playing %s", st.Region(i).Name)
		}
		if e.Suspended() {
			log.Printf("Playback finished")
			stop()
		}
	})
	defer unsubscribe()

	err = poller.Run(ctx, pollInterval)
	if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
		err = nil
	}
	if err == nil {
		err = dev.Err()
	}
	return err
}

func run(args []string) error {
	o, err := parseFlags(args, os.Stderr)
	if err != nil {
		return err
	}

	if o.logFile != "" {
		f, err := os.OpenFile(o.logFile, os.O_RDWR|os.O_CREATE|os.O_APPEND, 0666)
		if err != nil {
			return fmt.Errorf("opening log file: %w", err)
		}
		defer func() { _ = f.Close() }()

		if o.tui {
			log.SetOutput(f)
		} else {
			log.SetOutput(io.MultiWriter(os.Stderr, f))
		}
	} else if o.tui {
		log.SetOutput(io.Discard)
	}

	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	e, err := newEngine(o, log.Default())
	if err != nil {
		return err
	}

	report, err := e.Load(ctx, o.files)
	if err != nil {
		return err
	}
	printReport(os.Stdout, report, o.rate)

	if o.out != "" {
		return render(e, o, report.Frames)
	}
	return play(ctx, e, o)
}

func main() {
	if err := run(os.Args[1:]); err != nil {
		if errors.Is(err, flag.ErrHelp) {
			os.Exit(0)
		}
		log.Fatalf("sampbx: %v", err)
	}
}
