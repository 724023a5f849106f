// Package clock drives the analog clock face: dial geometry, hand angles and the
// once-per-second draw/erase cycle.
//
// The loop never touches a terminal directly. It draws through a Surface, reads
// time through a TimeProvider, and stops when its context is cancelled.
package clock
