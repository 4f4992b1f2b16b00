package main

import (
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/pkg/errors"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"
	"go.uber.org/zap"

	"github.com/emufog/emufog-sub000/config"
	"github.com/emufog/emufog-sub000/export/maxinet"
	"github.com/emufog/emufog-sub000/fog"
	"github.com/emufog/emufog-sub000/graph"
	"github.com/emufog/emufog-sub000/log"
	"github.com/emufog/emufog-sub000/metrics"
	"github.com/emufog/emufog-sub000/pipeline"
	"github.com/emufog/emufog-sub000/reader/brite"
)

// Flag names double as viper keys. EMUFOG_CONFIG, EMUFOG_LOG_LEVEL and so
// on override unset flags.
const (
	flagConfig      = "config"
	flagInput       = "input"
	flagOutput      = "output"
	flagMetricsFile = "metrics-file"
	flagLogLevel    = "log.level"
	flagConcurrency = "concurrency"
	flagNoColor     = "no-color"
)

const envPrefix = "EMUFOG"

func newRun(parent *cobra.Command) *cobra.Command {
	v := viper.New()
	cmd := &cobra.Command{
		Use:   "run",
		Short: "Place fog nodes in a topology and export a MaxiNet script",
		Example: fmt.Sprintf(`  %[1]s run --config emufog.toml --input topology.brite
  %[1]s run -c emufog.yaml -i topology.brite -o experiment.py --metrics-file emufog.prom
  EMUFOG_LOG_LEVEL=debug %[1]s run -c emufog.toml -i topology.brite`, parent.CommandPath()),
		Long: `'run' reads a BRITE topology, classifies its backbone, attaches devices
to the edge nodes, places fog nodes within the cost threshold of every
device and writes a MaxiNet experiment script.

If not every device can be served, no script is written and run exits
with an error.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if v.GetString(flagConfig) == "" || v.GetString(flagInput) == "" {
				return errors.Errorf("--%s and --%s are required", flagConfig, flagInput)
			}
			cmd.SilenceUsage = true
			return run(cmd.Context(), cmd, v)
		},
	}
	registerRunFlags(cmd.Flags())

	v.SetEnvPrefix(envPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_", "-", "_"))
	v.AutomaticEnv()
	if err := v.BindPFlags(cmd.Flags()); err != nil {
		panic(err)
	}
	return cmd
}

func registerRunFlags(fs *pflag.FlagSet) {
	fs.StringP(flagConfig, "c", "", "Configuration file (toml or yaml)")
	fs.StringP(flagInput, "i", "", "BRITE topology file")
	fs.StringP(flagOutput, "o", "emufog.py", "MaxiNet script to write")
	fs.String(flagMetricsFile, "", "Write Prometheus metrics to this textfile")
	fs.String(flagLogLevel, "", "Override the configured log level")
	fs.Int(flagConcurrency, 0, "Systems processed at once (default GOMAXPROCS)")
	fs.Bool(flagNoColor, false, "Disable colored output")
}

func run(ctx context.Context, cmd *cobra.Command, v *viper.Viper) error {
	cfg, err := config.LoadFile(v.GetString(flagConfig))
	if err != nil {
		return err
	}
	if lvl := v.GetString(flagLogLevel); lvl != "" {
		cfg.Log.Level = lvl
	}
	logger, err := log.New(cfg.Log)
	if err != nil {
		return errors.WithMessage(err, "setting up logging")
	}
	defer logger.Sync() //nolint:errcheck
	ctx = log.CtxWith(ctx, logger)

	gopts, err := pipeline.GraphOptions(cfg, logger)
	if err != nil {
		return err
	}
	g, err := brite.ReadFile(v.GetString(flagInput), gopts...)
	if err != nil {
		return err
	}
	st := g.Stats()
	logger.Info("Read topology",
		zap.String("file", v.GetString(flagInput)),
		zap.Int("systems", st.Systems),
		zap.Int("nodes", st.EdgeNodes+st.BackboneNodes),
		zap.Int("edges", st.Edges))

	reg := prometheus.NewRegistry()
	m, err := metrics.New(reg)
	if err != nil {
		return err
	}
	out, err := pipeline.Run(ctx, g, cfg,
		pipeline.WithMetrics(m), pipeline.WithConcurrency(v.GetInt(flagConcurrency)))
	if err != nil {
		return err
	}

	printSummary(cmd.OutOrStdout(), g, out, !v.GetBool(flagNoColor))

	if file := v.GetString(flagMetricsFile); file != "" {
		if err := metrics.WriteFile(file, reg); err != nil {
			return err
		}
	}
	if !out.Result.Success {
		return errors.WithMessage(out.Result.Reason, "fog placement failed")
	}
	return writeScript(v.GetString(flagOutput), g, out.Result)
}

func writeScript(file string, g *graph.Graph, res *fog.Result) error {
	f, err := os.Create(file)
	if err != nil {
		return errors.WithStack(err)
	}
	if err := maxinet.Export(f, g, res); err != nil {
		f.Close()
		return err
	}
	return errors.WithStack(f.Close())
}
