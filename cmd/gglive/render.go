package main

import (
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/gogpu/gglive"
	"github.com/gogpu/gglive/store"
)

func newRenderCmd(configPath *string) *cobra.Command {
	var (
		page          int
		width, height float64
		output        string
	)
	flags := gglive.DefaultConfig()

	cmd := &cobra.Command{
		Use:   "render",
		Short: "Render a demo page to SVG",
		Example: `  gglive render --page 2 --out-width 1440 --out-height 1152 -o demo.svg
  gglive render --fixed-text > demo.svg`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig(cmd.Flags(), *configPath)
			if err != nil {
				return err
			}
			d, err := gglive.Start(cfg)
			if err != nil {
				return err
			}
			defer d.Close()

			if err := drawDemo(d.Host()); err != nil {
				return err
			}
			svg, err := d.Markup(store.Index(page), width, height)
			if err != nil {
				return fmt.Errorf("page %d: %w", page, err)
			}

			var w io.Writer = cmd.OutOrStdout()
			if output != "" && output != "-" {
				f, err := os.Create(output)
				if err != nil {
					return err
				}
				defer f.Close()
				w = f
			}
			_, err = io.WriteString(w, svg)
			return err
		},
	}
	flags.BindFlags(cmd.Flags())
	cmd.Flags().IntVar(&page, "page", 0, "1-based page index (0 is the last page)")
	cmd.Flags().Float64Var(&width, "out-width", -1, "output width (-1 keeps the page width)")
	cmd.Flags().Float64Var(&height, "out-height", -1, "output height (-1 keeps the page height)")
	cmd.Flags().StringVarP(&output, "output", "o", "", "output file (default stdout)")
	return cmd
}
