package testing

import (
	"bytes"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/google/go-cmp/cmp"

	"github.com/go-drift/stylebind/pkg/styling"
)

// UpdateEnv rewrites golden files instead of comparing against them when
// set to "1".
const UpdateEnv = "STYLEBIND_UPDATE_SNAPSHOTS"

// TestingT is the subset of *testing.T used by MatchesFile, allowing
// test doubles to intercept failures.
type TestingT interface {
	Helper()
	Fatalf(format string, args ...any)
	Errorf(format string, args ...any)
	Name() string
}

// Snapshot captures the entries of a styling table and, optionally, the
// operations a renderer received.
type Snapshot struct {
	ClassBased bool                    `json:"classBased"`
	Entries    []styling.EntrySnapshot `json:"entries"`
	Ops        []string                `json:"ops,omitempty"`
}

// CaptureSnapshot captures every entry of ctx in insertion order.
func CaptureSnapshot(ctx *styling.Context) *Snapshot {
	view := styling.NewDebugView(ctx)
	return &Snapshot{
		ClassBased: view.IsClassBased(),
		Entries:    view.Snapshots(),
	}
}

// WithOps attaches renderer operations to the snapshot.
func (s *Snapshot) WithOps(ops []string) *Snapshot {
	s.Ops = ops
	return s
}

// MatchesFile compares s with the golden file at path and fails t with a
// diff when they differ.
func (s *Snapshot) MatchesFile(t TestingT, path string) {
	t.Helper()

	if os.Getenv(UpdateEnv) == "1" {
		if err := s.UpdateFile(path); err != nil {
			t.Fatalf("failed to update snapshot: %v", err)
		}
		return
	}

	golden, err := os.ReadFile(path)
	switch {
	case os.IsNotExist(err):
		t.Fatalf("snapshot file missing: %s\n\nTo create: %s=1 go test -run %s", path, UpdateEnv, t.Name())
		return
	case err != nil:
		t.Fatalf("failed to read snapshot: %v", err)
		return
	}

	var expected Snapshot
	if err := json.Unmarshal(golden, &expected); err != nil {
		t.Fatalf("invalid snapshot JSON in %s: %v", path, err)
		return
	}
	if diff := s.Diff(&expected); diff != "" {
		t.Errorf("snapshot mismatch: %s (-golden +got)\n%s\nTo update: %s=1 go test -run %s", path, diff, UpdateEnv, t.Name())
	}
}

// UpdateFile writes s to path, creating parent directories.
func (s *Snapshot) UpdateFile(path string) error {
	data, err := s.encode()
	if err != nil {
		return err
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return err
	}
	return os.WriteFile(path, data, 0o644)
}

// Diff reports how s differs from expected, or "" when they are equal once
// both are normalized through their JSON form.
func (s *Snapshot) Diff(expected *Snapshot) string {
	want, err := expected.normalize()
	if err != nil {
		return fmt.Sprintf("cannot normalize expected snapshot: %v", err)
	}
	got, err := s.normalize()
	if err != nil {
		return fmt.Sprintf("cannot normalize snapshot: %v", err)
	}
	return cmp.Diff(want, got)
}

// normalize round-trips s through JSON so that values compare the way they
// are stored on disk (all numbers become float64).
func (s *Snapshot) normalize() (*Snapshot, error) {
	data, err := s.encode()
	if err != nil {
		return nil, err
	}
	var out Snapshot
	if err := json.Unmarshal(data, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (s *Snapshot) encode() ([]byte, error) {
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetIndent("", "  ")
	enc.SetEscapeHTML(false)
	if err := enc.Encode(s); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}
