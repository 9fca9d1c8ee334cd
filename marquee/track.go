// ABOUTME: Builds the repeated track that gives the strip its endless appearance
// ABOUTME: The item list is concatenated TrackRepeat times in original order

package marquee

import (
	"errors"

	"showreel/media"
)

// TrackRepeat is how many copies of the item list make up a track.
// One visible copy plus buffer copies on both sides of every wrap point.
const TrackRepeat = 4

// ErrEmptyTrack is returned when a track is built from no items
var ErrEmptyTrack = errors.New("cannot build track from empty item list")

// Track is the repeated item sequence rendered on the surface
type Track []media.Item

// BuildTrack repeats items TrackRepeat times
func BuildTrack(items []media.Item) (Track, error) {
	if len(items) == 0 {
		return nil, ErrEmptyTrack
	}

	track := make(Track, 0, len(items)*TrackRepeat)
	for range TrackRepeat {
		track = append(track, items...)
	}

	return track, nil
}

// SetLen returns the number of distinct items (one set)
func (t Track) SetLen() int {
	return len(t) / TrackRepeat
}

// Base maps a track index back to its index in the original item list
func (t Track) Base(i int) int {
	n := t.SetLen()
	if n == 0 {
		return 0
	}

	return ((i % n) + n) % n
}
