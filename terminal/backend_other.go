//go:build !(linux || darwin || freebsd || netbsd || openbsd || dragonfly)

package terminal

type unsupportedBackend struct{}

func newBackend() Backend { return unsupportedBackend{} }

func (unsupportedBackend) Init() error { return ErrUnsupported }
func (unsupportedBackend) Fini() {}
func (unsupportedBackend) Size() (int, int) { return 80, 24 }
func (unsupportedBackend) Write(p []byte) (int, error) { return len(p), nil }
func (unsupportedBackend) Read(<-chan struct{}) ([]byte, error) { return nil, nil }

func resetTerminalMode() {}
