// Where: stackup/cmd/stackup/main.go
// What: CLI entrypoint.
// Why: Run setup with configured dependencies.
package main

import (
	"fmt"
	"os"

	"github.com/relaylytics/stackup/internal/app"
)

func main() {
	deps, closer, err := buildDependencies()
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}

	code := app.Run(os.Args[1:], deps)
	if closer != nil {
		closer.Close()
	}
	os.Exit(code)
}
