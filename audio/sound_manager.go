package audio

import (
	"sync"
	"time"

	"github.com/gopxl/beep"
	"github.com/gopxl/beep/speaker"
)

// SoundManager plays clock sounds through a single mixer on the speaker
type SoundManager struct {
	mu          sync.Mutex
	cfg         *AudioConfig
	mixer       *beep.Mixer
	initialized bool
}

// NewSoundManager creates a sound manager; nil cfg uses defaults
func NewSoundManager(cfg *AudioConfig) *SoundManager {
	if cfg == nil {
		cfg = DefaultAudioConfig()
	}
	return &SoundManager{
		cfg:   cfg,
		mixer: &beep.Mixer{},
	}
}

// Initialize opens the speaker and starts the mixer
func (sm *SoundManager) Initialize() error {
	sm.mu.Lock()
	defer sm.mu.Unlock()

	if sm.initialized {
		return nil
	}

	rate := beep.SampleRate(sm.cfg.SampleRate)
	if err := speaker.Init(rate, rate.N(100*time.Millisecond)); err != nil {
		return err
	}

	speaker.Play(sm.mixer)
	sm.initialized = true
	return nil
}

// Cleanup stops all sounds and closes the speaker
func (sm *SoundManager) Cleanup() {
	sm.mu.Lock()
	defer sm.mu.Unlock()

	if !sm.initialized {
		return
	}

	speaker.Lock()
	sm.mixer.Clear()
	speaker.Unlock()
	speaker.Close()

	sm.initialized = false
}

// PlayTick plays the per-second click
func (sm *SoundManager) PlayTick() {
	sm.play(CreateTickSound(sm.cfg))
}

// PlayChime plays count hour strikes
func (sm *SoundManager) PlayChime(count int) {
	if count <= 0 {
		return
	}
	sm.play(CreateChimeSound(sm.cfg, count))
}

// OnTick ticks every second and chimes the hour at minute zero
func (sm *SoundManager) OnTick(now time.Time) {
	if n := ChimeCount(now); n > 0 {
		sm.PlayChime(n)
		return
	}
	sm.PlayTick()
}

func (sm *SoundManager) play(s beep.Streamer) {
	sm.mu.Lock()
	defer sm.mu.Unlock()

	if !sm.initialized {
		return
	}

	speaker.Lock()
	sm.mixer.Add(s)
	speaker.Unlock()
}

// ChimeCount returns the number of strikes due at now: 1-12 on the hour, else 0
func ChimeCount(now time.Time) int {
	if now.Minute() != 0 || now.Second() != 0 {
		return 0
	}
	h := now.Hour() % 12
	if h == 0 {
		return 12
	}
	return h
}
