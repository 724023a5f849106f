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
	"runtime/debug"
	"strconv"
	"strings"
	"syscall"
	"time"
	"unicode/utf8"

	"github.com/lixenwraith/vi-clock/audio"
	"github.com/lixenwraith/vi-clock/clock"
	"github.com/lixenwraith/vi-clock/display"
	"github.com/lixenwraith/vi-clock/terminal"
)

// options holds parsed command-line settings
type options struct {
	backend    string
	colorMode  string
	glyph      rune
	palette    display.Palette
	smoothHour bool
	sound      bool
	debug      bool
	width      int
	height     int
}

func main() {
	// Panic Recovery: Ensure terminal is reset even if the clock crashes
	defer func() {
		if r := recover(); r != nil {
			terminal.EmergencyReset(os.Stdout)

			fmt.Fprintf(os.Stderr, "\n\x1b[31mVI-CLOCK CRASHED: %v\x1b[0m\n", r)
			fmt.Fprintf(os.Stderr, "Stack Trace:\n%s\n", debug.Stack())
			os.Exit(1)
		}
	}()

	opts, err := parseFlags(os.Args[1:], os.Stderr)
	if err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return
		}
		fmt.Fprintf(os.Stderr, "vi-clock: %v\n", err)
		os.Exit(1)
	}

	logFile := setupLogging(opts.debug)
	if code := finish(run(opts), logFile, os.Stderr); code != 0 {
		os.Exit(code)
	}
}

// finish closes the log and reports err, returning the exit code
// The log is closed here because os.Exit skips deferred calls
func finish(err error, logFile *os.File, errOut io.Writer) int {
	if err != nil {
		log.Printf("exit: %v", err)
	}
	if logFile != nil {
		logFile.Close()
	}
	if err != nil {
		fmt.Fprintf(errOut, "vi-clock: %v\n", err)
		return 1
	}
	return 0
}

// parseFlags reads command-line settings; invalid values are errors
func parseFlags(args []string, errOut io.Writer) (options, error) {
	fs := flag.NewFlagSet("vi-clock", flag.ContinueOnError)
	fs.SetOutput(errOut)

	backend := fs.String("backend", display.BackendTcell, "Display backend: tcell, ansi, text")
	colorMode := fs.String("color", "auto", "Color mode for the ansi backend: auto, truecolor, 256")
	glyph := fs.String("glyph", string(display.DefaultGlyph), "Character drawn for lit cells")
	smoothHour := fs.Bool("smooth-hour", false, "Advance the hour hand with the minutes")
	sound := fs.Bool("sound", false, "Tick every second and chime on the hour")
	debugFlag := fs.Bool("debug", false, "Write log to logs/vi-clock.log")
	size := fs.String("size", "80x24", "Canvas size in cells for the text backend, WxH")
	handColor := fs.String("hand-color", "", "Hour and minute hand color, #rrggbb")
	secondColor := fs.String("second-color", "", "Second hand color, #rrggbb")

	if err := fs.Parse(args); err != nil {
		return options{}, err
	}
	if fs.NArg() > 0 {
		return options{}, fmt.Errorf("unexpected arguments: %s", strings.Join(fs.Args(), " "))
	}

	opts := options{
		backend:    *backend,
		colorMode:  *colorMode,
		smoothHour: *smoothHour,
		sound:      *sound,
		debug:      *debugFlag,
	}

	switch opts.backend {
	case display.BackendTcell, display.BackendANSI, display.BackendText:
	default:
		return options{}, fmt.Errorf("%w: %q", display.ErrUnknownBackend, opts.backend)
	}

	if _, err := display.ParseColorMode(opts.colorMode); err != nil {
		return options{}, err
	}

	r, n := utf8.DecodeRuneInString(*glyph)
	if r == utf8.RuneError || n != len(*glyph) {
		return options{}, fmt.Errorf("glyph must be a single character, got %q", *glyph)
	}
	if err := display.ValidGlyph(r); err != nil {
		return options{}, err
	}
	opts.glyph = r

	opts.palette = display.DefaultPalette()
	if *handColor != "" {
		rgb, err := display.ParseHex(*handColor)
		if err != nil {
			return options{}, err
		}
		opts.palette[clock.ColorHour] = rgb
		opts.palette[clock.ColorMinute] = rgb
	}
	if *secondColor != "" {
		rgb, err := display.ParseHex(*secondColor)
		if err != nil {
			return options{}, err
		}
		opts.palette[clock.ColorSecond] = rgb
	}

	w, h, err := parseSize(*size)
	if err != nil {
		return options{}, err
	}
	opts.width, opts.height = w, h

	return opts, nil
}

// parseSize parses "WxH" in terminal cells
func parseSize(s string) (int, int, error) {
	ws, hs, ok := strings.Cut(strings.ToLower(s), "x")
	if !ok {
		return 0, 0, fmt.Errorf("size %q: expected WxH", s)
	}
	w, err := strconv.Atoi(ws)
	if err != nil || w <= 0 {
		return 0, 0, fmt.Errorf("size %q: invalid width", s)
	}
	h, err := strconv.Atoi(hs)
	if err != nil || h <= 0 {
		return 0, 0, fmt.Errorf("size %q: invalid height", s)
	}
	return w, h, nil
}

// run wires display, sound and clock loop and blocks until quit
func run(opts options) error {
	disp, err := display.New(opts.backend, display.Options{
		Glyph:     opts.glyph,
		Palette:   opts.palette,
		ColorMode: opts.colorMode,
		Out:       os.Stdout,
		Width:     opts.width,
		Height:    opts.height,
	})
	if err != nil {
		return err
	}

	if err := disp.Init(); err != nil {
		return fmt.Errorf("display init: %w", err)
	}
	// Normal exit terminal cleanup
	defer disp.Fini()

	w, h := disp.Size()
	log.Printf("backend %s, canvas %dx%d", opts.backend, w, h)

	cfg := clock.Config{SmoothHour: opts.smoothHour}

	audioCfg := audio.LoadAudioConfig()
	if opts.sound {
		audioCfg.Enabled = true
	}
	if audioCfg.Enabled && opts.backend != display.BackendText {
		sm := audio.NewSoundManager(audioCfg)
		if err := sm.Initialize(); err != nil {
			log.Printf("audio initialization failed: %v (continuing without audio)", err)
		} else {
			defer sm.Cleanup()
			cfg.OnTick = sm.OnTick
		}
	}

	tp := clock.NewTimeProvider()
	loop, err := clock.NewLoop(disp, w, h, tp, cfg)
	if err != nil {
		return err
	}
	face := loop.Face()
	log.Printf("face center (%d,%d) radius %d", face.CX, face.CY, face.R)

	if opts.backend == display.BackendText {
		loop.Snapshot(tp.Now())
		return nil
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	inputDone := make(chan struct{})
	go func() {
		defer close(inputDone)
		defer func() {
			if r := recover(); r != nil {
				terminal.EmergencyReset(os.Stdout)
				fmt.Fprintf(os.Stderr, "\r\n\x1b[31mINPUT CRASHED: %v\x1b[0m\r\n", r)
				fmt.Fprintf(os.Stderr, "Stack Trace:\r\n%s\r\n", debug.Stack())
				os.Exit(1)
			}
		}()
		disp.WaitQuit()
		log.Printf("quit requested")
		cancel()
	}()

	start := time.Now()
	err = loop.Run(ctx)
	log.Printf("stopped after %s: %v", time.Since(start).Round(time.Second), err)

	// Release the input goroutine before Fini tears the display down
	disp.Interrupt()
	<-inputDone

	if errors.Is(err, context.Canceled) {
		return nil
	}
	return err
}
