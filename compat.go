package abxmeta

import "time"

// DurationTolerance is how far apart track durations may be while still
// playing in sync.
const DurationTolerance = 300 * time.Millisecond

// Compatible reports whether the tracks can be switched between during
// synchronized playback: every duration is within DurationTolerance of the
// first one.
//
// Zero or one duration is trivially compatible.
func Compatible(durations ...time.Duration) bool {
	if len(durations) < 2 {
		return true
	}

	ref := durations[0]
	for _, d := range durations[1:] {
		diff := d - ref
		if diff < 0 {
			diff = -diff
		}
		if diff > DurationTolerance {
			return false
		}
	}
	return true
}

// SoloGains returns per-track gains for count tracks playing together with
// only selected audible: 1 for selected, 0 for the rest.
//
// A selection outside [0, count) mutes every track.
func SoloGains(count, selected int) []float32 {
	if count <= 0 {
		return nil
	}

	gains := make([]float32, count)
	if selected >= 0 && selected < count {
		gains[selected] = 1
	}
	return gains
}
