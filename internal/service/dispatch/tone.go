package dispatch

import (
	"time"

	"github.com/KasumiMercury/primind-medication-adherence/internal/domain"
)

const ToneDuration = 300 * time.Millisecond

// Pitch follows urgency: urgent > default > gentle.
var toneFrequencies = map[domain.Sound]int{
	domain.SoundUrgent:  880,
	domain.SoundDefault: 660,
	domain.SoundGentle:  440,
}

// ToneFrequency returns the pitch for sound. ok is false for "none". An unset
// sound plays the default tone.
func ToneFrequency(sound domain.Sound) (int, bool) {
	if sound == "" {
		sound = domain.SoundDefault
	}
	hz, ok := toneFrequencies[sound]
	return hz, ok
}
