package audio

import (
	"os"
	"strconv"
)

// AudioConfig holds sound settings
type AudioConfig struct {
	Enabled    bool
	Volume     float64 // 0.0-1.0
	SampleRate int
}

// DefaultAudioConfig returns config with sound disabled and moderate volume
func DefaultAudioConfig() *AudioConfig {
	return &AudioConfig{
		Enabled:    false,
		Volume:     0.5,
		SampleRate: 48000,
	}
}

// LoadAudioConfig applies environment overrides to the defaults
//
//	VI_CLOCK_SOUND        bool, enables tick and chime
//	VI_CLOCK_VOLUME       0-100
//	VI_CLOCK_SAMPLE_RATE  Hz
func LoadAudioConfig() *AudioConfig {
	cfg := DefaultAudioConfig()

	if enabled := os.Getenv("VI_CLOCK_SOUND"); enabled != "" {
		if val, err := strconv.ParseBool(enabled); err == nil {
			cfg.Enabled = val
		}
	}

	if volume := os.Getenv("VI_CLOCK_VOLUME"); volume != "" {
		if val, err := strconv.Atoi(volume); err == nil {
			cfg.Volume = min(max(float64(val)/100.0, 0), 1)
		}
	}

	if sampleRate := os.Getenv("VI_CLOCK_SAMPLE_RATE"); sampleRate != "" {
		if val, err := strconv.Atoi(sampleRate); err == nil && val > 0 {
			cfg.SampleRate = val
		}
	}

	return cfg
}
