package organizer

import (
	"fmt"
	"time"

	"github.com/mewkiz/flac"
)

// Inspect returns the duration recorded in the STREAMINFO block of a FLAC
// file. Audio frames are never decoded.
func Inspect(path string) (time.Duration, error) {
	stream, err := flac.Open(path)
	if err != nil {
		return 0, fmt.Errorf("open flac %s: %w", path, err)
	}
	defer stream.Close()

	info := stream.Info
	if info == nil || info.SampleRate == 0 {
		return 0, fmt.Errorf("flac %s: missing stream info", path)
	}
	seconds := float64(info.NSamples) / float64(info.SampleRate)
	return time.Duration(seconds * float64(time.Second)), nil
}
