// Package terminal provides direct ANSI terminal control for full-screen cell output.
//
// Features:
//   - True color (24-bit) and 256-color palette output
//   - Double-buffered output with cell-level diffing
//   - Raw stdin input with a minimal key decoder
//   - Clean terminal restoration on exit and panic
//
// The package bypasses terminfo entirely and emits xterm-compatible sequences.
// Raw mode and window size come from golang.org/x/term and golang.org/x/sys/unix.
package terminal
