package cli

import (
	"context"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/matzehuels/foilsweep/pkg/cache"
	"github.com/matzehuels/foilsweep/pkg/config"
	"github.com/matzehuels/foilsweep/pkg/datfile"
	"github.com/matzehuels/foilsweep/pkg/geometry"
)

// geometryOpts are the flags shared by commands that resolve an airfoil.
type geometryOpts struct {
	file    string // explicit coordinate file; overrides name lookup
	noCache bool   // skip the coordinate download cache
}

func (o *geometryOpts) register(cmd *cobra.Command) {
	cmd.Flags().StringVarP(&o.file, "file", "f", "", "read coordinates from a .dat file instead of looking the name up")
	cmd.Flags().BoolVar(&o.noCache, "no-cache", false, "disable caching")
}

// setup loads the config and opens the cache. The caller closes the cache.
func (c *CLI) setup(ctx context.Context, noCache bool) (config.Config, cache.Cache, error) {
	cfg, err := c.loadConfig()
	if err != nil {
		return cfg, nil, err
	}
	ch, err := c.newCache(ctx, cfg, noCache)
	if err != nil {
		return cfg, nil, err
	}
	return cfg, ch, nil
}

// loadAirfoil resolves the airfoil named in args or given by file.
func (c *CLI) loadAirfoil(ctx context.Context, cfg config.Config, ch cache.Cache, args []string, file string) (*geometry.Airfoil, error) {
	if err := requireNameOrFile(args, file); err != nil {
		return nil, err
	}
	label := nameArg(args)
	if file != "" {
		label = file
	}
	spinner := newSpinnerWithContext(ctx, fmt.Sprintf("Resolving %s...", label))
	spinner.Start()
	a, err := c.resolveAirfoil(ctx, cfg, ch, nameArg(args), file)
	spinner.Stop()
	return a, err
}

// loadAirfoilOnly resolves an airfoil for commands that need nothing else.
func (c *CLI) loadAirfoilOnly(ctx context.Context, args []string, o geometryOpts) (*geometry.Airfoil, error) {
	if err := requireNameOrFile(args, o.file); err != nil {
		return nil, err
	}
	cfg, ch, err := c.setup(ctx, o.noCache)
	if err != nil {
		return nil, err
	}
	defer ch.Close()
	return c.loadAirfoil(ctx, cfg, ch, args, o.file)
}

// resolveCommand creates the resolve command.
func (c *CLI) resolveCommand() *cobra.Command {
	var (
		g      geometryOpts
		output string
		noName bool
		raw    bool
	)

	cmd := &cobra.Command{
		Use:   "resolve [name]",
		Short: "Resolve an airfoil and print or save its coordinates",
		Long: `Resolve an airfoil by name or from a .dat file.

Names are tried against the NACA generator (naca2412, NACA 23012), the local
catalog directory and, if enabled in the config, the UIUC coordinate
database. With --file the given file is read and no lookup happens.

A short summary is printed; --raw prints the coordinates in Selig .dat
format instead, and -o also writes them to a file.`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := c.loadAirfoilOnly(cmd.Context(), args, g)
			if err != nil {
				return err
			}
			if raw {
				if err := writeCoordinates(cmd.OutOrStdout(), a, !noName); err != nil {
					return err
				}
			} else {
				printAirfoilSummary(a)
			}
			if output == "" {
				return nil
			}
			if _, err := datfile.WriteFile(output, a.Coordinates(), a.Name(), !noName); err != nil {
				return err
			}
			if !raw {
				printFile(output)
			}
			return nil
		},
	}

	g.register(cmd)
	cmd.Flags().StringVarP(&output, "output", "o", "", "write coordinates to this file")
	cmd.Flags().BoolVar(&noName, "no-name", false, "omit the name line")
	cmd.Flags().BoolVar(&raw, "raw", false, "print coordinates instead of a summary")

	return cmd
}

// exportCommand creates the export command.
func (c *CLI) exportCommand() *cobra.Command {
	var (
		g      geometryOpts
		output string
		noName bool
	)

	cmd := &cobra.Command{
		Use:   "export [name]",
		Short: "Write an airfoil's coordinates to a .dat file",
		Long: `Write an airfoil's coordinates to a Selig-format .dat file.

The file is named after the airfoil (<name>.dat) unless -o is given. Use
"-o -" to write to stdout.`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := c.loadAirfoilOnly(cmd.Context(), args, g)
			if err != nil {
				return err
			}
			if output == "-" {
				return writeCoordinates(cmd.OutOrStdout(), a, !noName)
			}
			if output == "" {
				output = fileStem(a.Name()) + ".dat"
			}
			if _, err := datfile.WriteFile(output, a.Coordinates(), a.Name(), !noName); err != nil {
				return err
			}
			printSuccess("Exported %s (%d points)", a.Name(), a.Len())
			printFile(output)
			return nil
		},
	}

	g.register(cmd)
	cmd.Flags().StringVarP(&output, "output", "o", "", "output file (default <name>.dat, - for stdout)")
	cmd.Flags().BoolVar(&noName, "no-name", false, "omit the name line")

	return cmd
}

func writeCoordinates(w io.Writer, a *geometry.Airfoil, includeName bool) error {
	_, err := fmt.Fprintln(w, datfile.Format(a.Coordinates(), a.Name(), includeName))
	return err
}

// printAirfoilSummary prints the name, point count and extents of a.
func printAirfoilSummary(a *geometry.Airfoil) {
	xs, ys := a.X(), a.Y()
	xmin, xmax := bounds(xs)
	ymin, ymax := bounds(ys)

	printSuccess("Resolved %s", StyleTitle.Render(a.Name()))
	printKeyValue("Points", strconv.Itoa(a.Len()))
	printKeyValue("Chord", fmt.Sprintf("%.4f … %.4f", xmin, xmax))
	printKeyValue("Thickness", fmt.Sprintf("%.4f (y %.4f … %.4f)", ymax-ymin, ymin, ymax))
}

func bounds(v []float64) (lo, hi float64) {
	if len(v) == 0 {
		return 0, 0
	}
	lo, hi = v[0], v[0]
	for _, x := range v[1:] {
		lo, hi = min(lo, x), max(hi, x)
	}
	return lo, hi
}

// fileStem turns an airfoil name into a safe lowercase file stem.
func fileStem(name string) string {
	var b strings.Builder
	for _, r := range strings.ToLower(strings.TrimSpace(name)) {
		switch {
		case r >= 'a' && r <= 'z', r >= '0' && r <= '9', r == '-', r == '_', r == '.':
			b.WriteRune(r)
		case r == ' ':
			b.WriteByte('_')
		}
	}
	if b.Len() == 0 {
		return "airfoil"
	}
	return b.String()
}
