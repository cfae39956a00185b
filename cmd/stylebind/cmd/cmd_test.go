package cmd

import (
	"bytes"
	stderrors "errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"gopkg.in/yaml.v3"

	"github.com/go-drift/stylebind/cmd/stylebind/internal/config"
	"github.com/go-drift/stylebind/pkg/errors"
	"github.com/go-drift/stylebind/pkg/styling"
)

const widthScenario = `
name: width
host_layers: 1
passes:
  - bindings:
      - {id: 1, source: 0, prop: width, value: 100px}
      - {id: 2, source: 1, prop: width, value: 50px}
  - name: settle
    bindings:
      - {id: 1, source: 0, prop: width, value: 100px}
      - {id: 2, source: 1, prop: width, value: 50px}
  - name: drop-template
    bindings:
      - {id: 1, source: 0, prop: width, value: null}
      - {id: 2, source: 1, prop: width, value: 50px}
`

func captureOutput(t *testing.T) (*bytes.Buffer, *bytes.Buffer) {
	t.Helper()
	var out, errOut bytes.Buffer
	oldOut, oldErr := stdout, stderr
	stdout, stderr = &out, &errOut
	t.Cleanup(func() {
		stdout, stderr = oldOut, oldErr
		verbose = false
	})
	return &out, &errOut
}

func writeScenario(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "scenario.yaml")
	if err := os.WriteFile(path, []byte(body), 0o644); err != nil {
		t.Fatalf("write scenario: %v", err)
	}
	return path
}

func TestReplay(t *testing.T) {
	s, err := config.ParseScenario([]byte(widthScenario), &config.Resolved{})
	if err != nil {
		t.Fatalf("ParseScenario: %v", err)
	}

	var out bytes.Buffer
	ctx, err := Replay(s, &out)
	if err != nil {
		t.Fatalf("Replay: %v", err)
	}

	got := out.String()
	for _, want := range []string{"pass 1:", "settle:", "drop-template:", `set width = "50px"`} {
		if !strings.Contains(got, want) {
			t.Errorf("output missing %q:\n%s", want, got)
		}
	}

	e := ctx.Entry("width")
	if e == nil {
		t.Fatal("width entry missing")
	}
	if v := styling.Resolve(e); v != "50px" {
		t.Errorf("Resolve = %v, want 50px", v)
	}
}

func TestReplayUsageError(t *testing.T) {
	s, err := config.ParseScenario([]byte(`
host_layers: 2
passes:
  - bindings:
      - {id: 5, source: 1, prop: width, value: 1px}
  - bindings:
      - {id: 5, source: 2, prop: width, value: 2px}
`), &config.Resolved{})
	if err != nil {
		t.Fatalf("ParseScenario: %v", err)
	}

	var reported []*errors.StylingError
	errors.SetHandler(handlerFunc(func(e *errors.StylingError) { reported = append(reported, e) }))
	t.Cleanup(func() { errors.SetHandler(nil) })

	_, err = Replay(s, &bytes.Buffer{})
	if err == nil {
		t.Fatal("expected an error for a host id reused across layers")
	}
	var se *errors.StylingError
	if !stderrors.As(err, &se) || se.Kind != errors.KindUsage {
		t.Fatalf("error = %v, want a usage StylingError", err)
	}
	if !strings.HasPrefix(err.Error(), "pass 2: ") {
		t.Errorf("error %q should name the pass", err)
	}
	if len(reported) != 1 {
		t.Errorf("reported %d errors, want 1", len(reported))
	}
}

func TestReplayClassBased(t *testing.T) {
	s, err := config.ParseScenario([]byte(`
class_based: true
static:
  - {prop: active, value: true}
passes:
  - bindings:
      - {id: 1, source: 0, prop: active, value: false}
`), &config.Resolved{})
	if err != nil {
		t.Fatalf("ParseScenario: %v", err)
	}

	var out bytes.Buffer
	ctx, err := Replay(s, &out)
	if err != nil {
		t.Fatalf("Replay: %v", err)
	}
	if !ctx.IsClassBased() {
		t.Error("expected the class table")
	}
	if ctx.Entry("active") == nil {
		t.Error("active entry missing")
	}
}

func TestRunCommand(t *testing.T) {
	out, _ := captureOutput(t)
	path := writeScenario(t, widthScenario)
	dump := filepath.Join(t.TempDir(), "table.yaml")

	if err := Execute([]string{"run", "--quiet", "--dump", dump, path}); err != nil {
		t.Fatalf("run: %v", err)
	}

	got := out.String()
	if strings.Contains(got, "settle:") {
		t.Errorf("--quiet should hide pass output:\n%s", got)
	}
	for _, want := range []string{"PROP", "RESOLVED", "width", `"50px"`} {
		if !strings.Contains(got, want) {
			t.Errorf("table missing %q:\n%s", want, got)
		}
	}

	data, err := os.ReadFile(dump)
	if err != nil {
		t.Fatalf("read dump: %v", err)
	}
	var snaps []styling.EntrySnapshot
	if err := yaml.Unmarshal(data, &snaps); err != nil {
		t.Fatalf("decode dump: %v", err)
	}
	if len(snaps) != 1 || snaps[0].Prop != "width" {
		t.Errorf("dump = %+v, want one width entry", snaps)
	}
}

func TestRunRequiresScenario(t *testing.T) {
	captureOutput(t)
	if err := Execute([]string{"run"}); err == nil {
		t.Error("expected an error without a scenario file")
	}
}

func TestRunMissingScenario(t *testing.T) {
	captureOutput(t)
	err := Execute([]string{"run", filepath.Join(t.TempDir(), "missing.yaml")})
	var se *errors.StylingError
	if !stderrors.As(err, &se) || se.Kind != errors.KindConfig {
		t.Errorf("error = %v, want a config StylingError", err)
	}
}

func TestExecuteHelpAndVersion(t *testing.T) {
	out, _ := captureOutput(t)

	if err := Execute(nil); err != nil {
		t.Fatalf("Execute(nil): %v", err)
	}
	if !strings.Contains(out.String(), "Commands:") {
		t.Errorf("help output missing command list:\n%s", out)
	}

	out.Reset()
	if err := Execute([]string{"--version"}); err != nil {
		t.Fatalf("--version: %v", err)
	}
	if !strings.Contains(out.String(), Version) {
		t.Errorf("version output = %q", out)
	}

	out.Reset()
	if err := Execute([]string{"run", "--help"}); err != nil {
		t.Fatalf("run --help: %v", err)
	}
	if !strings.Contains(out.String(), "stylebind run") {
		t.Errorf("run help = %q", out)
	}
}

func TestExecuteUnknownCommand(t *testing.T) {
	_, errOut := captureOutput(t)
	if err := Execute([]string{"frobnicate"}); err == nil {
		t.Error("expected an error for an unknown command")
	}
	if !strings.Contains(errOut.String(), "frobnicate") {
		t.Errorf("stderr = %q", errOut)
	}
}

func TestInspect(t *testing.T) {
	out, _ := captureOutput(t)
	if err := Execute([]string{"--verbose", "inspect"}); err != nil {
		t.Fatalf("inspect: %v", err)
	}
	got := out.String()
	for _, want := range []string{"Project:", "Host layers:", "verbose=true"} {
		if !strings.Contains(got, want) {
			t.Errorf("inspect output missing %q:\n%s", want, got)
		}
	}
}

func TestFormatMask(t *testing.T) {
	if got := formatMask(styling.DefaultGuardMask); got != "-" {
		t.Errorf("formatMask(default) = %q", got)
	}
	if got := formatMask(styling.BuildGuardMask(3, 4)); !strings.Contains(got, "3,4") {
		t.Errorf("formatMask(3,4) = %q", got)
	}
}

type handlerFunc func(*errors.StylingError)

func (f handlerFunc) HandleError(err *errors.StylingError) { f(err) }
func (f handlerFunc) HandlePanic(*errors.PanicError)       {}
