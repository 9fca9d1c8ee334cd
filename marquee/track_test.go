// ABOUTME: Tests for track building
// ABOUTME: Verifies the 4x repetition, order preservation and empty-input rejection

package marquee

import (
	"errors"
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestBuildTrackSizing(t *testing.T) {
	for _, k := range []int{1, 2, 3, 7} {
		items := testItems(k)

		track, err := BuildTrack(items)
		if err != nil {
			t.Fatalf("BuildTrack(%d items) failed: %v", k, err)
		}

		if len(track) != TrackRepeat*k {
			t.Errorf("len(track) = %d, want %d", len(track), TrackRepeat*k)
		}

		for i := range track {
			if diff := cmp.Diff(items[i%k], track[i]); diff != "" {
				t.Fatalf("track[%d] mismatch (-want +got):\n%s", i, diff)
			}
		}

		if track.SetLen() != k {
			t.Errorf("SetLen() = %d, want %d", track.SetLen(), k)
		}
	}
}

func TestBuildTrackEmpty(t *testing.T) {
	track, err := BuildTrack(nil)
	if !errors.Is(err, ErrEmptyTrack) {
		t.Errorf("Expected ErrEmptyTrack, got %v", err)
	}

	if track != nil {
		t.Errorf("Expected no track, got %d items", len(track))
	}
}

func TestBuildTrackDoesNotAliasInput(t *testing.T) {
	items := testItems(2)

	track, err := BuildTrack(items)
	if err != nil {
		t.Fatal(err)
	}

	items[0].Title = "changed"

	if track[0].Title == "changed" {
		t.Error("Expected track to hold its own copy of the items")
	}
}

func TestTrackBase(t *testing.T) {
	track, err := BuildTrack(testItems(3))
	if err != nil {
		t.Fatal(err)
	}

	tests := map[int]int{0: 0, 2: 2, 3: 0, 7: 1, 11: 2, -1: 2}
	for i, want := range tests {
		if got := track.Base(i); got != want {
			t.Errorf("Base(%d) = %d, want %d", i, got, want)
		}
	}
}
