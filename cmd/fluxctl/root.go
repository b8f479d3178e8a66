package main

import (
	"github.com/spf13/cobra"

	"github.com/fluxgraph/flux/internal/config"
)

var appCfg config.AppConfig

func newRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:   "fluxctl",
		Short: "Build, evaluate, and serve Flux dataflow graphs",
	}

	flags := root.PersistentFlags()
	flags.StringVar(&appCfg.LogLevel, "log-level", "info", "diagnostics log level (debug, info, warn, error)")
	flags.IntVar(&appCfg.CacheCapacity, "cache-capacity", config.DefaultCacheCapacity, "value cache LRU capacity")
	flags.IntVar(&appCfg.TriggerDepth, "trigger-depth", config.DefaultTriggerDepthLimit, "trigger cascade recursion limit")

	root.AddCommand(newRunCmd())
	root.AddCommand(newCompileCmd())
	root.AddCommand(newServeCmd())

	return root
}
