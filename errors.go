package playground

import "errors"

var (
	// ErrEndOfBuffer is returned by render functions when all of their
	// material has been consumed.
	ErrEndOfBuffer = errors.New("end of audio buffer")

	// ErrEmptyManifest is returned when a track manifest lists no tracks.
	ErrEmptyManifest = errors.New("track manifest has no tracks")

	// ErrNoTrackPath is returned when a manifest track has no file path.
	ErrNoTrackPath = errors.New("track has no file path")

	// ErrUnsupportedFormat is returned when a track file extension matches
	// none of the known decoders.
	ErrUnsupportedFormat = errors.New("unsupported audio file format")
)
