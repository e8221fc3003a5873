// main is the entry point for the emistat CLI.
package main

import (
	"os"

	"emistat/cmd"
	"emistat/internal/contract"
	"emistat/internal/iostore"
)

func main() {
	os.Exit(run())
}

// run keeps the deferred cleanup ahead of the process exit code.
func run() int {
	defer func() {
		if err := iostore.CloseStores(); err != nil {
			contract.LogWarn("Failed to close stores", err)
		}
		if err := cmd.StopProfiling(); err != nil {
			contract.LogWarn("Failed to stop profiling", err)
		}
	}()

	if err := cmd.Execute(); err != nil {
		contract.LogWarn("Command failed", err)
		return 1
	}
	return 0
}
