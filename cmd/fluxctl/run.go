package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/fluxgraph/flux/internal/metrics"
)

func newRunCmd() *cobra.Command {
	var frames int

	cmd := &cobra.Command{
		Use:   "run",
		Short: "Pull-evaluate the sample graph across a few frames and print each result",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg := buildEngineConfig(appCfg, metrics.Nop())
			g, root := buildSampleGraph(cfg)

			for frame := 0; frame < frames; frame++ {
				t := float64(frame) / 30.0
				out, err := g.Evaluate(root, 0, evalctxAt(t, uint64(frame)))
				if err != nil {
					return err
				}
				fmt.Printf("frame %d (t=%.3f): %.4f\n", frame, t, out.Float())
			}
			return nil
		},
	}

	cmd.Flags().IntVar(&frames, "frames", 30, "number of frames to evaluate")

	return cmd
}
