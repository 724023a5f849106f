//go:build linux || darwin || freebsd || netbsd || openbsd || dragonfly

package terminal

import (
	"errors"
	"os"

	"golang.org/x/sys/unix"
	"golang.org/x/term"
)

// pollInterval bounds how long Read waits before rechecking its stop channel
const pollInterval = 100 // ms

// ttyBackend drives the controlling terminal through stdin and stdout
type ttyBackend struct {
	in    int
	out   *os.File
	saved *term.State
	buf   [256]byte
}

func newBackend() Backend {
	return &ttyBackend{in: int(os.Stdin.Fd()), out: os.Stdout}
}

// Init puts stdin in raw mode; stdin must be a terminal
func (b *ttyBackend) Init() error {
	if !term.IsTerminal(b.in) {
		return ErrNotTerminal
	}
	st, err := term.MakeRaw(b.in)
	if err != nil {
		return err
	}
	b.saved = st
	return nil
}

func (b *ttyBackend) Fini() {
	if b.saved == nil {
		return
	}
	term.Restore(b.in, b.saved)
	b.saved = nil
}

// Size is the window size of stdout, 80x24 when it cannot be queried
func (b *ttyBackend) Size() (int, int) {
	ws, err := unix.IoctlGetWinsize(int(b.out.Fd()), unix.TIOCGWINSZ)
	if err != nil || ws.Col == 0 || ws.Row == 0 {
		return 80, 24
	}
	return int(ws.Col), int(ws.Row)
}

func (b *ttyBackend) Write(p []byte) (int, error) {
	return b.out.Write(p)
}

// Read returns the next chunk of key bytes, or nil once stopCh closes or stdin hits EOF
func (b *ttyBackend) Read(stopCh <-chan struct{}) ([]byte, error) {
	fds := []unix.PollFd{{Fd: int32(b.in), Events: unix.POLLIN}}
	for {
		select {
		case <-stopCh:
			return nil, nil
		default:
		}

		n, err := unix.Poll(fds, pollInterval)
		if errors.Is(err, unix.EINTR) || (err == nil && n == 0) {
			continue
		}
		if err != nil {
			return nil, err
		}

		rn, err := unix.Read(b.in, b.buf[:])
		switch {
		case errors.Is(err, unix.EINTR), errors.Is(err, unix.EAGAIN):
			continue
		case err != nil:
			return nil, err
		case rn == 0:
			return nil, nil
		}
		return append([]byte(nil), b.buf[:rn]...), nil
	}
}

// resetTerminalMode re-enables echo, line editing and signals on /dev/tty
// Used after a crash, so failures are ignored
func resetTerminalMode() {
	tty, err := os.OpenFile("/dev/tty", os.O_RDWR, 0)
	if err != nil {
		return
	}
	defer tty.Close()

	fd := int(tty.Fd())
	tios, err := unix.IoctlGetTermios(fd, ioctlGetTermios)
	if err != nil {
		return
	}
	tios.Lflag |= unix.ECHO | unix.ICANON | unix.ISIG | unix.IEXTEN
	tios.Iflag |= unix.ICRNL
	unix.IoctlSetTermios(fd, ioctlSetTermios, tios)
}
