// main is the entry point for the gitwrapped CLI.
package main

import (
	"os"

	"github.com/huangsam/gitwrapped/cmd"
	"github.com/huangsam/gitwrapped/internal/contract"
	"github.com/huangsam/gitwrapped/internal/iocache"
)

func main() {
	code := run()
	os.Exit(code)
}

// run executes the root command and releases the stores and profiles it opened.
func run() int {
	defer iocache.CloseStores()
	defer func() {
		if err := cmd.StopProfiling(); err != nil {
			contract.LogWarn("Failed to stop profiling", err)
		}
	}()

	cmd.SetCacheManager(iocache.Manager)
	if err := cmd.Execute(); err != nil {
		contract.Logger().Errorf("%v", err)
		return 1
	}
	return 0
}
