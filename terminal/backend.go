package terminal

import "errors"

// ErrNotTerminal is returned by Init when stdin is not a terminal
var ErrNotTerminal = errors.New("terminal: stdin is not a terminal")

// ErrUnsupported is returned by Init on platforms without a raw-mode backend
var ErrUnsupported = errors.New("terminal: platform not supported")

// Backend abstracts platform-specific terminal operations
type Backend interface {
	// Init enters raw mode
	Init() error
	// Fini restores the saved terminal mode
	Fini()

	// Size returns the window size in cells
	Size() (width, height int)

	// Write writes raw bytes to the terminal output
	Write(p []byte) (int, error)

	// Read blocks until input is available, the stop channel is closed, or an error occurs
	// A nil slice with nil error means stopped or EOF
	Read(stopCh <-chan struct{}) ([]byte, error)
}
