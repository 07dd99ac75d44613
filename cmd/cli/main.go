// cmd/cli/main.go
//
// Offline capture tool: runs the intelligence pipeline on the given text
// and prints the result as JSON. No clustering service, no persistence.
package main

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"strings"

	"malunita/internal/logging"
	"malunita/internal/task"
)

func main() {
	if len(os.Args) < 2 {
		fmt.Fprintln(os.Stderr, "usage: malunita-cli <captured text>")
		os.Exit(2)
	}

	logging.Setup("warn", "")

	text := strings.Join(os.Args[1:], " ")
	pipeline := task.NewPipeline(nil)
	intel := pipeline.Run(context.Background(), text)

	out, err := json.MarshalIndent(intel, "", "  ")
	if err != nil {
		fmt.Fprintln(os.Stderr, "encode:", err)
		os.Exit(1)
	}
	fmt.Println(string(out))
}
