package main

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"

	inbetween "github.com/tphakala/go-cel-inbetween"
)

func newInbetweenCommand(opts *globalOptions) *cobra.Command {
	def := defaultConfig()
	flags := def

	cmd := &cobra.Command{
		Use:   "inbetween",
		Short: "Generate N inbetweens between keyframe A and keyframe B",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			config, err := GetConfig(opts.configPath)
			if err != nil {
				return err
			}
			applyFlags(&config, &flags, cmd.Flags())
			if cmd.Flags().Changed("log-dir") {
				config.LogDir = opts.logDir
			}
			if err := verifyConfig(&config); err != nil {
				return err
			}
			return runInbetween(cmd, &config, opts.verbose)
		},
	}

	f := cmd.Flags()
	f.StringVar(&flags.A, "a", "", "Keyframe A image")
	f.StringVar(&flags.B, "b", "", "Keyframe B image")
	f.IntVarP(&flags.Frames, "n", "n", def.Frames, "Number of inbetweens")
	f.StringVar(&flags.Out, "out", "", "Output directory (created if missing)")
	f.StringVar(&flags.Prefix, "prefix", def.Prefix, "Output file name prefix")
	f.IntVar(&flags.StartIndex, "start-index", def.StartIndex, "Index of the first output frame")
	f.IntVar(&flags.Digits, "digits", def.Digits, "Zero-padded width of the frame index")
	f.Float64Var(&flags.EdgeProtect, "edge-protect", def.EdgeProtect, "Edge protection radius in pixels")
	f.Float64Var(&flags.OcclusionThreshold, "occ-th", def.OcclusionThreshold, "Forward/backward flow disagreement threshold in pixels")
	f.Float64Var(&flags.LineStrength, "line-strength", def.LineStrength, "Line-art reinjection strength in [0,1]")
	f.IntVar(&flags.LineKernel, "line-kernel", def.LineKernel, "Line mask dilation kernel size (forced odd)")
	f.Float64Var(&flags.FlowScale, "flow-scale", def.FlowScale, "Global flow magnitude multiplier")
	f.BoolVar(&flags.Parallel, "parallel", false, "Render frames concurrently")
	f.IntVar(&flags.Workers, "workers", 0, "Concurrent frame renderers (0 = GOMAXPROCS)")

	return cmd
}

// applyFlags copies every explicitly set flag from flags into config.
func applyFlags(config, flags *Config, set *pflag.FlagSet) {
	overrides := map[string]func(){
		"a":             func() { config.A = flags.A },
		"b":             func() { config.B = flags.B },
		"n":             func() { config.Frames = flags.Frames },
		"out":           func() { config.Out = flags.Out },
		"prefix":        func() { config.Prefix = flags.Prefix },
		"start-index":   func() { config.StartIndex = flags.StartIndex },
		"digits":        func() { config.Digits = flags.Digits },
		"edge-protect":  func() { config.EdgeProtect = flags.EdgeProtect },
		"occ-th":        func() { config.OcclusionThreshold = flags.OcclusionThreshold },
		"line-strength": func() { config.LineStrength = flags.LineStrength },
		"line-kernel":   func() { config.LineKernel = flags.LineKernel },
		"flow-scale":    func() { config.FlowScale = flags.FlowScale },
		"parallel":      func() { config.Parallel = flags.Parallel },
		"workers":       func() { config.Workers = flags.Workers },
	}
	set.Visit(func(f *pflag.Flag) {
		if apply, ok := overrides[f.Name]; ok {
			apply()
		}
	})
}

func runInbetween(cmd *cobra.Command, config *Config, verbose bool) error {
	logger, closer := setupLogger(config.LogDir, verbose, cmd.ErrOrStderr())
	defer closer.Close()

	cfg := config.libraryConfig()
	cfg.Logger = logger.WithField("out", config.Out)

	logger.WithFields(StructFields(config)).Debug("starting")

	start := time.Now()
	res, err := inbetween.GenerateFiles(config.A, config.B, config.Out, cfg)
	if err != nil {
		logger.WithError(err).Error("generation failed")
		return err
	}
	elapsed := time.Since(start)

	out := cmd.OutOrStdout()
	fmt.Fprintf(out, "Generated %d inbetweens in %s\n", len(res.Frames), config.Out)
	fmt.Fprintln(out, renderFrames(res))
	fmt.Fprintln(out, renderStats(res))
	fmt.Fprintf(out, "Duration: %.2fs\n", elapsed.Seconds())
	return nil
}
