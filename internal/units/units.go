// Package units provides shared constants and conversions for capture time units
package units

// Unit constants
const (
	S  = "s"
	MS = "ms"
	US = "us"
	NS = "ns"
)

// MicrosPerSecond is the scale between capture timestamps and pulse widths.
const MicrosPerSecond = 1e6

// SecondsToMicros converts a capture time difference to microseconds.
func SecondsToMicros(s float64) float64 {
	return s * MicrosPerSecond
}

// MicrosToSeconds converts microseconds to capture time.
func MicrosToSeconds(us float64) float64 {
	return us / MicrosPerSecond
}

// ConvertTime converts a time in seconds to the target units.
// Captures store timestamps in seconds.
func ConvertTime(seconds float64, targetUnits string) float64 {
	switch targetUnits {
	case MS:
		return seconds * 1e3
	case US:
		return seconds * MicrosPerSecond
	case NS:
		return seconds * 1e9
	default:
		return seconds // default to seconds if unknown unit
	}
}
