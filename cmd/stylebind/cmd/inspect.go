package cmd

import (
	"fmt"
)

func init() {
	RegisterCommand(&Command{
		Name:  "inspect",
		Short: "Show resolved project configuration",
		Long: `Show the configuration stylebind resolves for the current project.

Values come from stylebind.yaml in the project root (the nearest directory
containing go.mod), with defaults for anything the file leaves out.`,
		Usage: "stylebind inspect",
		Run:   runInspect,
	})
}

func runInspect(args []string) error {
	if len(args) > 0 {
		return fmt.Errorf("unexpected argument: %s", args[0])
	}
	cfg, err := resolveConfig()
	if err != nil {
		return err
	}

	module := cfg.ModulePath
	if module == "" {
		module = "(none)"
	}
	mode := "properties"
	if cfg.ClassBased {
		mode = "classes"
	}

	fmt.Fprintf(stdout, "Project:     %s\n", cfg.ProjectName)
	fmt.Fprintf(stdout, "Root:        %s\n", cfg.Root)
	fmt.Fprintf(stdout, "Module:      %s\n", module)
	fmt.Fprintf(stdout, "Host layers: %d\n", cfg.HostLayers)
	fmt.Fprintf(stdout, "Mode:        %s\n", mode)
	fmt.Fprintf(stdout, "Logging:     %s (verbose=%t)\n", cfg.LogFormat, cfg.Verbose)
	return nil
}
