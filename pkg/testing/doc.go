// Package testing provides render-tree snapshot assertions and a fake clock
// for deterministic animation tests.
//
// # Snapshot Testing
//
// Capture and compare a render tree plus its display operations:
//
//	snap := drifttest.CaptureSnapshot(root, graphics.Size{Width: 400, Height: 800})
//	snap.MatchesFile(t, "testdata/my_layer.snapshot.json")
//
// Update snapshots with:
//
//	DRIFT_UPDATE_SNAPSHOTS=1 go test ./...
//
// # Fake Clock
//
// Control time for deterministic animation tests:
//
//	clock := drifttest.NewFakeClock()
//	clock.Advance(100 * time.Millisecond)
//
// # Import Alias
//
// Since this package has the same name as the standard library testing
// package, import it with an alias:
//
//	import drifttest "github.com/go-drift/engine/pkg/testing"
package testing
