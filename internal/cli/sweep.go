package cli

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/matzehuels/foilsweep/pkg/cache"
	"github.com/matzehuels/foilsweep/pkg/config"
	"github.com/matzehuels/foilsweep/pkg/errors"
	"github.com/matzehuels/foilsweep/pkg/plot"
	"github.com/matzehuels/foilsweep/pkg/polar"
	"github.com/matzehuels/foilsweep/pkg/sweep"
)

// sweepOpts holds the sweep command flags. Sweep parameters only override
// the config file when set on the command line.
type sweepOpts struct {
	geometryOpts

	alphaStart, alphaEnd, alphaStep float64
	reynolds                        []float64
	reMin, reMax                    float64
	reCount                         int
	maxIter, minPoints, jobs        int
	workDir                         string
	keepWorkDir, refresh            bool

	output string
	plot   string
	tui    bool
}

// sweepCommand creates the sweep command.
func (c *CLI) sweepCommand() *cobra.Command {
	var o sweepOpts

	cmd := &cobra.Command{
		Use:   "sweep [name]",
		Short: "Run XFOIL across a range of Reynolds numbers",
		Long: `Run XFOIL for an airfoil at every requested Reynolds number and save the
resulting polars.

The default sweep covers 0° to 10° angle of attack in 0.25° steps at twelve
log-spaced Reynolds numbers from 1e4 to 1e6. Reynolds numbers are given
either as a list (--re 1e5,2e5,5e5) or as a log-spaced range
(--re-min 5e4 --re-max 1e6 --re-count 8).

A run that fails is recorded and the sweep continues. Results are cached by
geometry and parameters; --refresh re-runs everything.

Output format follows the -o extension: .json (default) or .csv.

Examples:
  foilsweep sweep naca2412
  foilsweep sweep e387 --re 6e4,1e5,2e5 --jobs 4 -o e387.csv
  foilsweep sweep --file wing.dat --alpha-end 15 --plot wing.png`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.runSweep(cmd, args, o)
		},
	}

	f := cmd.Flags()
	o.geometryOpts.register(cmd)
	f.Float64Var(&o.alphaStart, "alpha-start", sweep.DefaultAlphaStart, "first angle of attack (deg)")
	f.Float64Var(&o.alphaEnd, "alpha-end", sweep.DefaultAlphaEnd, "last angle of attack (deg)")
	f.Float64Var(&o.alphaStep, "alpha-step", sweep.DefaultAlphaStep, "angle of attack increment (deg)")
	f.Float64SliceVar(&o.reynolds, "re", nil, "Reynolds numbers, comma separated")
	f.Float64Var(&o.reMin, "re-min", sweep.DefaultReynoldsMin, "smallest Reynolds number of a log-spaced range")
	f.Float64Var(&o.reMax, "re-max", sweep.DefaultReynoldsMax, "largest Reynolds number of a log-spaced range")
	f.IntVar(&o.reCount, "re-count", sweep.DefaultReynoldsCount, "number of Reynolds numbers in a log-spaced range")
	f.IntVar(&o.maxIter, "iter", sweep.DefaultMaxIter, "solver iteration limit per angle")
	f.IntVar(&o.minPoints, "min-points", sweep.DefaultMinPoints, "samples for a run to count as well converged")
	f.IntVarP(&o.jobs, "jobs", "j", 0, "parallel solver runs (0 runs sequentially)")
	f.StringVar(&o.workDir, "workdir", "", "scratch directory for solver files (default: temporary)")
	f.BoolVar(&o.keepWorkDir, "keep-workdir", false, "keep the temporary scratch directory")
	f.BoolVar(&o.refresh, "refresh", false, "ignore cached polars")
	f.StringVarP(&o.output, "output", "o", "", "output file, .json or .csv (default <name>_polars.json)")
	f.StringVar(&o.plot, "plot", "", "also plot the polars to this .png, .svg or .pdf")
	f.BoolVar(&o.tui, "tui", false, "show a live progress view")
	cmd.MarkFlagsMutuallyExclusive("re", "re-min")
	cmd.MarkFlagsMutuallyExclusive("re", "re-max")
	cmd.MarkFlagsMutuallyExclusive("re", "re-count")

	return cmd
}

func (c *CLI) runSweep(cmd *cobra.Command, args []string, o sweepOpts) error {
	ctx := cmd.Context()
	logger := loggerFromContext(ctx)

	if err := requireNameOrFile(args, o.file); err != nil {
		return err
	}
	format, err := polarFormat(o.output)
	if err != nil {
		return err
	}

	cfg, ch, err := c.setup(ctx, o.noCache)
	if err != nil {
		return err
	}
	defer ch.Close()

	opts := cfg.SweepOptions()
	o.apply(cmd, &opts)
	if err := opts.Validate(); err != nil {
		return err
	}

	a, err := c.loadAirfoil(ctx, cfg, ch, args, o.file)
	if err != nil {
		return err
	}
	logger.Info("Resolved airfoil", "name", a.Name(), "points", a.Len())

	s, err := c.newSolver(cfg, logger)
	if err != nil {
		return err
	}
	runner := sweep.NewRunner(s, ch, solverKeyer(cfg), logger)

	prog := newProgress(logger)
	var ds *polar.Dataset
	if o.tui {
		ds, err = runSweepTUI(ctx, cmd.OutOrStdout(), runner, a, opts)
	} else {
		ds, err = runner.Run(ctx, a, opts)
	}
	if ds == nil {
		return err
	}
	prog.done(fmt.Sprintf("Swept %s at %d Reynolds numbers", a.Name(), ds.Len()))

	output := o.output
	if output == "" {
		output = fileStem(a.Name()) + "_polars." + format
	}
	if werr := writePolars(output, format, ds); werr != nil {
		return werr
	}

	printSweepSummary(ds)
	printFile(output)

	if o.plot != "" && ds.Converged().Len() > 0 {
		if perr := savePolarPlot(o.plot, ds); perr != nil {
			printWarning("plot: %v", perr)
		} else {
			printFile(o.plot)
		}
	}

	if err != nil {
		return err
	}
	if ds.Converged().Len() == 0 {
		return errors.Wrap(errors.ErrCodeSolverInvocation, ds.Err(), "no Reynolds number converged for %s", a.Name())
	}
	for _, e := range ds.Failed() {
		logger.Debug("run failed", "re", polar.EngString(e.Reynolds), "reason", e.Reason)
	}
	return nil
}

// apply copies explicitly set flags over the config-derived options.
func (o sweepOpts) apply(cmd *cobra.Command, opts *sweep.Options) {
	changed := cmd.Flags().Changed
	if changed("alpha-start") {
		opts.AlphaStart = o.alphaStart
	}
	if changed("alpha-end") {
		opts.AlphaEnd = o.alphaEnd
	}
	if changed("alpha-step") {
		opts.AlphaStep = o.alphaStep
	}
	switch {
	case changed("re"):
		opts.Reynolds = o.reynolds
	case changed("re-min") || changed("re-max") || changed("re-count"):
		opts.Reynolds = sweep.Geomspace(o.reMin, o.reMax, o.reCount)
	}
	if changed("iter") {
		opts.MaxIter = o.maxIter
	}
	if changed("min-points") {
		opts.MinPoints = o.minPoints
	}
	if changed("jobs") {
		opts.Concurrency = o.jobs
	}
	if changed("workdir") {
		opts.WorkDir = o.workDir
	}
	if changed("keep-workdir") {
		opts.KeepWorkDir = o.keepWorkDir
	}
	opts.Refresh = o.refresh
}

// solverKeyer scopes cache keys to the solver setup, so curves from a
// different binary or paneling never answer for each other.
func solverKeyer(cfg config.Config) cache.Keyer {
	scope := filepath.Base(cfg.Solver.Binary)
	if cfg.Solver.Repanel {
		scope += "+pane"
	}
	return cache.NewScopedKeyer(cache.NewDefaultKeyer(), scope+":")
}

// polarFormat picks "json" or "csv" from the output extension.
func polarFormat(path string) (string, error) {
	switch ext := strings.ToLower(filepath.Ext(path)); ext {
	case "", ".json":
		return "json", nil
	case ".csv":
		return "csv", nil
	default:
		return "", errors.New(errors.ErrCodeInvalidFormat, "unsupported output format %q (use .json or .csv)", ext)
	}
}

func writePolars(path, format string, ds *polar.Dataset) (err error) {
	f, err := os.Create(path)
	if err != nil {
		return errors.Wrap(errors.ErrCodeInvalidPath, err, "create %s", path)
	}
	defer func() {
		if cerr := f.Close(); err == nil {
			err = cerr
		}
	}()
	if format == "csv" {
		return ds.WriteCSV(f)
	}
	return ds.WriteJSON(f)
}

// savePolarPlot draws the converged entries of ds to path.
func savePolarPlot(path string, ds *polar.Dataset) error {
	fig, err := plot.Polars(ds, plot.Options{})
	if err != nil {
		return err
	}
	return saveFigure(path, fig)
}

// saveFigure writes fig in the format implied by path.
func saveFigure(path string, fig *plot.Figure) (err error) {
	format, err := plot.FormatFromPath(path)
	if err != nil {
		return err
	}
	f, err := os.Create(path)
	if err != nil {
		return errors.Wrap(errors.ErrCodeInvalidPath, err, "create %s", path)
	}
	defer func() {
		if cerr := f.Close(); err == nil {
			err = cerr
		}
	}()
	return fig.Save(f, format, 0, 0)
}
