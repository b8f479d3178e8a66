package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/fluxgraph/flux/internal/metrics"
)

func newCompileCmd() *cobra.Command {
	var frames int

	cmd := &cobra.Command{
		Use:   "compile",
		Short: "Compile the sample graph once and execute the compiled plan across a few frames",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg := buildEngineConfig(appCfg, metrics.Nop())
			g, root := buildSampleGraph(cfg)

			cg, err := g.Compile(root, 0)
			if err != nil {
				return err
			}

			for frame := 0; frame < frames; frame++ {
				t := float64(frame) / 30.0
				out, err := cg.Execute(evalctxAt(t, uint64(frame)))
				if err != nil {
					return err
				}
				fmt.Printf("frame %d (t=%.3f): %.4f\n", frame, t, out.Float())
			}
			return nil
		},
	}

	cmd.Flags().IntVar(&frames, "frames", 30, "number of frames to execute")

	return cmd
}
