// Command stylebind replays styling binding scenarios against the
// resolution table and prints what each render pass applies.
package main

import (
	"fmt"
	"os"

	"github.com/go-drift/stylebind/cmd/stylebind/cmd"
)

func main() {
	if err := cmd.Execute(os.Args[1:]); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
