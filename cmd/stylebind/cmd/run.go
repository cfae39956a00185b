package cmd

import (
	"fmt"
	"io"
	"os"

	"github.com/spf13/pflag"
	"gopkg.in/yaml.v3"

	"github.com/go-drift/stylebind/cmd/stylebind/internal/config"
	"github.com/go-drift/stylebind/cmd/stylebind/internal/logging"
	"github.com/go-drift/stylebind/pkg/core"
	"github.com/go-drift/stylebind/pkg/errors"
	"github.com/go-drift/stylebind/pkg/styling"
)

func init() {
	RegisterCommand(&Command{
		Name:  "run",
		Short: "Replay a binding scenario",
		Long: `Replay the render passes of a scenario file against one element.

After each pass stylebind flushes the element and prints every value the
renderer received. The final table is printed at the end.

Scenario format:
  name: width
  host_layers: 1         # matched directives (default: stylebind.yaml)
  class_based: false     # bind class names instead of properties
  static:
    - {prop: width, value: 10px}
  passes:
    - bindings:
        - {id: 1, source: 0, prop: width, value: 100px}
        - {id: 2, source: 1, prop: width, value: 50px, sanitize: true}`,
		Usage: "stylebind run [--quiet] [--dump FILE] <scenario.yaml>",
		Run:   runScenario,
	})
}

func runScenario(args []string) error {
	flagSet := pflag.NewFlagSet("run", pflag.ContinueOnError)
	flagSet.SetOutput(stderr)
	dumpPath := flagSet.String("dump", "", "write the final table as YAML to this file")
	quiet := flagSet.BoolP("quiet", "q", false, "only print the final table")
	if err := flagSet.Parse(args); err != nil {
		return err
	}
	rest := flagSet.Args()
	if len(rest) != 1 {
		return fmt.Errorf("exactly one scenario file is required\n\nUsage: stylebind run <scenario.yaml>")
	}

	cfg, err := resolveConfig()
	if err != nil {
		return err
	}

	logger, err := logging.New(cfg.Verbose, cfg.LogFormat)
	if err != nil {
		return err
	}
	defer func() { _ = logger.Sync() }()
	styling.SetLogger(logger)
	defer styling.SetLogger(nil)
	errors.SetHandler(logging.NewErrorHandler(logger))
	defer errors.SetHandler(nil)

	scenario, err := config.LoadScenario(rest[0], cfg)
	if err != nil {
		return &errors.StylingError{Op: "cmd.run", Kind: errors.KindConfig, Err: err}
	}

	passLog := stdout
	if *quiet {
		passLog = io.Discard
	}
	ctx, err := Replay(scenario, passLog)
	if err != nil {
		return err
	}

	renderTable(stdout, ctx)

	if *dumpPath != "" {
		data, err := yaml.Marshal(styling.NewDebugView(ctx).Snapshots())
		if err != nil {
			return fmt.Errorf("failed to encode table: %w", err)
		}
		if err := os.WriteFile(*dumpPath, data, 0o644); err != nil {
			return fmt.Errorf("failed to write %s: %w", *dumpPath, err)
		}
	}
	return nil
}

// Replay runs every pass of s against a fresh element, printing the applied
// operations to w, and returns the table the bindings targeted.
func Replay(s *config.Scenario, w io.Writer) (*styling.Context, error) {
	owner := core.NewStyleOwner()
	element := owner.AddElement(core.NoParent, core.ElementOptions{
		Renderer:   &printRenderer{w: w},
		HostLayers: s.Layers(),
	})
	ctx := element.Styles()
	if s.IsClassBased() {
		ctx = element.Classes()
	}

	for _, st := range s.Static {
		styling.RegisterStatic(ctx, st.Prop, st.Value)
	}

	for i, pass := range s.Passes {
		name := pass.Name
		if name == "" {
			name = fmt.Sprintf("pass %d", i+1)
		}
		if err := registerPass(ctx, element.Node(), pass); err != nil {
			return nil, fmt.Errorf("%s: %w", name, err)
		}
		fmt.Fprintf(w, "%s:\n", passTitleStyle.Render(name))
		if applied := owner.FlushStyling(); applied == 0 {
			fmt.Fprintln(w, dimStyle.Render("  (no changes)"))
		}
	}
	return ctx, nil
}

// registerPass issues the registrations of one pass, converting a misuse
// panic from the table into an error.
func registerPass(ctx *styling.Context, node *styling.Node, pass config.PassSpec) (err error) {
	defer func() {
		r := recover()
		if r == nil {
			return
		}
		u, ok := errors.AsUsage(r)
		if !ok {
			panic(r)
		}
		se := &errors.StylingError{Op: "cmd.run", Kind: errors.KindUsage, Prop: u.Prop, Err: u}
		errors.Report(se)
		err = se
	}()

	for _, b := range pass.Bindings {
		styling.RegisterBinding(ctx, node, b.ID, b.Source, b.Prop, b.Value, b.Sanitize, b.Bypass)
	}
	return nil
}

// printRenderer writes applied operations instead of touching an element.
type printRenderer struct {
	w io.Writer
}

func (r *printRenderer) SetStyle(prop string, value styling.Value) {
	fmt.Fprintf(r.w, "  set %s = %s\n", prop, formatValue(value))
}

func (r *printRenderer) RemoveStyle(prop string) {
	fmt.Fprintf(r.w, "  remove %s\n", prop)
}

func (r *printRenderer) SetClass(name string, enabled bool) {
	if enabled {
		fmt.Fprintf(r.w, "  add class %s\n", name)
	} else {
		fmt.Fprintf(r.w, "  remove class %s\n", name)
	}
}
