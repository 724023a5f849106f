package clock

import (
	"context"
	"errors"
	"fmt"
	"log"
	"time"

	"github.com/lixenwraith/vi-clock/raster"
)

// ErrNilSurface is returned by NewLoop without a surface
var ErrNilSurface = errors.New("clock: nil surface")

// TickInterval is the nominal time between frames
const TickInterval = time.Second

// Config tunes loop behavior
type Config struct {
	// SmoothHour advances the hour hand with the minutes instead of snapping per hour
	SmoothHour bool

	// Interval overrides TickInterval when non-zero
	Interval time.Duration

	// OnTick runs after each committed frame with the time it shows
	OnTick func(now time.Time)
}

// Loop owns the dial geometry and the draw/erase cycle
type Loop struct {
	face    Face
	surface Surface
	raster  *raster.Rasterizer
	time    TimeProvider
	cfg     Config
}

// NewLoop binds a surface of width x height plot units to a time source
func NewLoop(surface Surface, width, height int, tp TimeProvider, cfg Config) (*Loop, error) {
	if surface == nil {
		return nil, ErrNilSurface
	}
	face, err := NewFace(width, height)
	if err != nil {
		return nil, fmt.Errorf("dial geometry for %dx%d: %w", width, height, err)
	}
	r, err := raster.New(surface.SetCell)
	if err != nil {
		return nil, fmt.Errorf("rasterizer init: %w", err)
	}
	if tp == nil {
		tp = NewTimeProvider()
	}
	if cfg.Interval <= 0 {
		cfg.Interval = TickInterval
	}

	return &Loop{
		face:    face,
		surface: surface,
		raster:  r,
		time:    tp,
		cfg:     cfg,
	}, nil
}

// Face returns the dial geometry
func (l *Loop) Face() Face {
	return l.face
}

// Run draws the dial once, then ticks until ctx is done
// Each tick's hands are erased with identical geometry before the next tick draws
func (l *Loop) Run(ctx context.Context) error {
	l.drawDial()
	l.surface.Commit()

	for {
		now := l.time.Now()
		hands := HandsAt(now, l.cfg.SmoothHour)

		l.drawTicks()
		l.drawHands(hands, false)
		l.surface.Commit()

		if l.cfg.OnTick != nil {
			l.cfg.OnTick(now)
		}

		var stopped bool
		select {
		case <-ctx.Done():
			stopped = true
		case <-l.time.After(l.cfg.Interval):
		}

		l.drawHands(hands, true)

		if stopped || ctx.Err() != nil {
			l.surface.Commit()
			log.Printf("clock: loop stopped at %s", now.Format(time.TimeOnly))
			return ctx.Err()
		}
	}
}

// Snapshot draws one complete frame for t and commits it
func (l *Loop) Snapshot(t time.Time) {
	l.drawDial()
	l.drawTicks()
	l.drawHands(HandsAt(t, l.cfg.SmoothHour), false)
	l.surface.Commit()
}

func (l *Loop) drawDial() {
	l.raster.Circle(ColorDial, l.face.CX, l.face.CY, l.face.R)
}

// drawTicks redraws the 12 hour marks; idempotent, restores marks crossed by an erased hand
func (l *Loop) drawTicks() {
	for i := 0; i < 12; i++ {
		l.polar(ColorTick, TickSpan, TickAngle(i))
	}
}

func (l *Loop) drawHands(h Hands, erase bool) {
	second, minute, hour := ColorSecond, ColorMinute, ColorHour
	if erase {
		second, minute, hour = ColorOff, ColorOff, ColorOff
	}
	l.polar(second, SecondSpan, h.Second)
	l.polar(minute, MinuteSpan, h.Minute)
	l.polar(hour, HourSpan, h.Hour)
}

func (l *Loop) polar(color int, s Span, angle float64) {
	r := float64(l.face.R)
	l.raster.PolarSegment(color, l.face.CX, l.face.CY, s.From*r, s.To*r, angle)
}
