package clock

import (
	"math"
	"time"
)

const twoPi = 2 * math.Pi

// Hands holds the hand angles for one tick, in radians clockwise from 12 o'clock
type Hands struct {
	Hour   float64
	Minute float64
	Second float64
}

// HandsAt computes hand angles for t in t's location
// With smoothHour unset the hour hand snaps to whole hours; set, it advances with the minutes
func HandsAt(t time.Time, smoothHour bool) Hands {
	h := float64(t.Hour() % 12)
	if smoothHour {
		h += float64(t.Minute()) / 60
	}
	return Hands{
		Hour:   twoPi * h / 12,
		Minute: twoPi * float64(t.Minute()) / 60,
		Second: twoPi * float64(t.Second()) / 60,
	}
}

// TickAngle returns the angle of hour mark i (0..11)
func TickAngle(i int) float64 {
	return twoPi * float64(i) / 12
}
