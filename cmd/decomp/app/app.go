package app

import (
	"fmt"
	"log/slog"
	"strconv"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
)

// flagValues mirrors SearchConfig and LoggerConfig; only flags set on the
// command line override the configuration file.
type flagValues struct {
	ppm        float64
	abs        float64
	alphabet   string
	bounds     string
	parent     string
	precision  float64
	massErrors bool
	workers    int
	ion        string
	filter     string
	noFilter   bool
	logLevel   string
	jsonLog    bool
}

func New() *cobra.Command {
	var (
		cfgPath string
		fv      flagValues
	)
	defaults := DefaultConfig()

	rootCmd := &cobra.Command{
		Use:   "decomp [flags] <mass> [<mass>...]",
		Short: "Decompose masses into molecular formulas over a weighted alphabet",
		Long: "decomp converts each precursor m/z to a neutral mass and lists every formula\n" +
			"over the alphabet within its tolerance, closest first.",
		Args:          cobra.MinimumNArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := LoadConfig(cfgPath)
			if err != nil {
				return err
			}
			if err := fv.apply(cmd.Flags(), cfg); err != nil {
				return err
			}
			if err := cfg.Validate(); err != nil {
				return fmt.Errorf("validate config: %w", err)
			}

			InitLogger(cfg.Logging, cmd.ErrOrStderr(), slog.String("service", "decomp"))

			masses, err := parseMasses(args)
			if err != nil {
				return err
			}

			runner, err := NewRunner(cfg.Search)
			if err != nil {
				slog.Error("init failed", slog.Any("error", err))
				return err
			}
			slog.Debug("decomposer ready",
				slog.Int("symbols", runner.alphabet.Size()),
				slog.Float64("precision", runner.decomposer.Precision()))

			return runner.Run(cmd.Context(), masses, cmd.OutOrStdout())
		},
	}

	s := defaults.Search
	f := rootCmd.Flags()
	f.StringVarP(&cfgPath, "config", "c", "", "path to YAML configuration file")
	f.Float64VarP(&fv.ppm, "ppm", "p", s.PPM, "relative mass tolerance in ppm")
	f.Float64VarP(&fv.abs, "abs", "a", s.Absolute, "lower limit of the absolute tolerance")
	f.StringVar(&fv.alphabet, "alphabet", s.Alphabet, "alphabet as symbol=mass pairs")
	f.StringVarP(&fv.bounds, "bounds", "e", s.Bounds, "count bounds, e.g. CH[0-20]N[-2]S[1]")
	f.StringVar(&fv.parent, "parent", s.Parent, "parent formula capping every symbol count")
	f.Float64Var(&fv.precision, "precision", s.Precision, "mass per integer unit of the residue tables")
	f.BoolVarP(&fv.massErrors, "mass-errors", "m", s.MassErrors, "print mass and ppm error per formula")
	f.IntVarP(&fv.workers, "workers", "w", s.Workers, "masses decomposed in parallel")
	f.StringVarP(&fv.ion, "ion", "i", s.Ion, "precursor ion type of the input m/z, e.g. [M+H]+, [M-H]-, [M]")
	f.StringVarP(&fv.filter, "filter", "f", s.Filter, "formula filter: rdbe or none")
	f.BoolVar(&fv.noFilter, "nofilter", false, "disable formula filtering, same as --filter none")
	f.StringVar(&fv.logLevel, "log-level", defaults.Logging.Level, "debug, info, warn or error")
	f.BoolVar(&fv.jsonLog, "json-log", defaults.Logging.IsJSON, "log as JSON")

	return rootCmd
}

func (fv *flagValues) apply(fs *pflag.FlagSet, cfg *Config) error {
	if fs.Changed("nofilter") && fv.noFilter && fs.Changed("filter") && fv.filter != FilterNone {
		return fmt.Errorf("conflicting options: --nofilter and --filter=%s", fv.filter)
	}
	if cfg.Search == nil {
		cfg.Search = DefaultConfig().Search
	}
	if cfg.Logging == nil {
		cfg.Logging = DefaultConfig().Logging
	}
	s := cfg.Search
	set := func(name string, apply func()) {
		if fs.Changed(name) {
			apply()
		}
	}

	set("ppm", func() { s.PPM = fv.ppm })
	set("abs", func() { s.Absolute = fv.abs })
	set("alphabet", func() { s.Alphabet = fv.alphabet })
	set("bounds", func() { s.Bounds = fv.bounds })
	set("parent", func() { s.Parent = fv.parent })
	set("precision", func() { s.Precision = fv.precision })
	set("mass-errors", func() { s.MassErrors = fv.massErrors })
	set("workers", func() { s.Workers = fv.workers })
	set("ion", func() { s.Ion = fv.ion })
	set("filter", func() { s.Filter = fv.filter })
	set("nofilter", func() {
		if fv.noFilter {
			s.Filter = FilterNone
		}
	})
	set("log-level", func() { cfg.Logging.Level = fv.logLevel })
	set("json-log", func() { cfg.Logging.IsJSON = fv.jsonLog })

	return nil
}

func parseMasses(args []string) ([]float64, error) {
	masses := make([]float64, len(args))
	for i, arg := range args {
		m, err := strconv.ParseFloat(arg, 64)
		if err != nil {
			return nil, fmt.Errorf("mass %q: %w", arg, err)
		}
		masses[i] = m
	}

	return masses, nil
}
