package cli

import (
	"github.com/spf13/cobra"

	"github.com/matzehuels/foilsweep/pkg/plot"
	"github.com/matzehuels/foilsweep/pkg/polar"
)

// plotCommand creates the plot command.
func (c *CLI) plotCommand() *cobra.Command {
	var (
		g      geometryOpts
		output string
		opts   plot.Options
	)

	cmd := &cobra.Command{
		Use:   "plot [name]",
		Short: "Plot an airfoil's geometry",
		Long: `Plot an airfoil's geometry to a PNG, SVG or PDF file.

The format follows the output extension. The plot keeps a 1:1 aspect ratio.

Examples:
  foilsweep plot naca2412 -o naca2412.svg
  foilsweep plot --file wing.dat --markers -o wing.png`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if _, err := plot.FormatFromPath(output); err != nil {
				return err
			}
			a, err := c.loadAirfoilOnly(cmd.Context(), args, g)
			if err != nil {
				return err
			}
			fig, err := plot.Geometry(a, opts)
			if err != nil {
				return err
			}
			if err := saveFigure(output, fig); err != nil {
				return err
			}
			printSuccess("Plotted %s", a.Name())
			printFile(output)
			return nil
		},
	}

	g.register(cmd)
	cmd.Flags().StringVarP(&output, "output", "o", "", "output file (.png, .svg or .pdf)")
	cmd.Flags().StringVar(&opts.Title, "title", "", "plot title (default \"<name> Airfoil\")")
	cmd.Flags().BoolVar(&opts.Markers, "markers", false, "mark every coordinate")
	cmd.Flags().BoolVar(&opts.NoFill, "no-fill", false, "draw the outline only")
	_ = cmd.MarkFlagRequired("output")

	return cmd
}

// polarsCommand creates the polars command.
func (c *CLI) polarsCommand() *cobra.Command {
	var (
		output string
		opts   plot.Options
		list   bool
	)

	cmd := &cobra.Command{
		Use:   "polars <dataset.json>",
		Short: "Plot or summarize a saved polar dataset",
		Long: `Plot a polar dataset written by "foilsweep sweep" as a 2x2 grid of
CL, CD, CM and CL/CD against angle of attack, one curve per Reynolds number.

Without -o the dataset summary table is printed instead.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ds, err := polar.ReadJSONFile(args[0])
			if err != nil {
				return err
			}
			if output == "" || list {
				printInfo("%s", StyleTitle.Render(ds.Airfoil))
				printSweepSummary(ds)
			}
			if output == "" {
				return nil
			}
			fig, err := plot.Polars(ds, opts)
			if err != nil {
				return err
			}
			if err := saveFigure(output, fig); err != nil {
				return err
			}
			printSuccess("Plotted %d polars for %s", ds.Converged().Len(), ds.Airfoil)
			printFile(output)
			return nil
		},
	}

	cmd.Flags().StringVarP(&output, "output", "o", "", "output file (.png, .svg or .pdf)")
	cmd.Flags().StringVar(&opts.Title, "title", "", "plot title (default \"<name> Polars\")")
	cmd.Flags().BoolVarP(&list, "list", "l", false, "print the summary table as well")

	return cmd
}
