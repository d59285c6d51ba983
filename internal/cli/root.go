package cli

import (
	"context"
	"os"
)

// Execute runs the dfpa CLI with os.Args and returns the first command error.
//
// Logging goes to stderr at info level, or debug with --verbose (-v).
//
//	func main() {
//	    if err := cli.Execute(ctx); err != nil {
//	        os.Exit(1)
//	    }
//	}
func Execute(ctx context.Context) error {
	return New(os.Stderr, LogInfo).RootCommand().ExecuteContext(ctx)
}
