// Package testing provides helpers for testing code that drives styling
// tables.
//
// # Recording renderer
//
// RecordingRenderer implements styling.Renderer, keeps the live style and
// class state of a fake element and logs every applied operation:
//
//	r := stylebindtest.NewRecordingRenderer()
//	ctx.Flush(r, nil)
//	if got := r.Style("width"); got != "100px" { ... }
//
// # Snapshot Testing
//
// Capture and compare a table against a golden file:
//
//	snap := stylebindtest.CaptureSnapshot(ctx).WithOps(r.Ops())
//	snap.MatchesFile(t, "testdata/width.snapshot.json")
//
// Update snapshots with:
//
//	STYLEBIND_UPDATE_SNAPSHOTS=1 go test ./...
//
// # Import Alias
//
// Since this package has the same name as the standard library testing
// package, import it with an alias:
//
//	import stylebindtest "github.com/go-drift/stylebind/pkg/testing"
package testing
