package main

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"

	"github.com/wbrown/iconwall"
	"github.com/wbrown/iconwall/config"
	"github.com/wbrown/iconwall/imageutil"
	"github.com/wbrown/iconwall/internal/logging"
)

var (
	configFile string
	seed       uint64
	logLevel   string
	dpr        float64
	outDir     string
	width      int
	height     int
	clusters   int
)

func main() {
	rootCmd := &cobra.Command{
		Use:           "iconwall",
		Short:         "procedural icon-grid wallpaper generator",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			logging.Setup(logLevel)
		},
		RunE: runRender,
	}

	pf := rootCmd.PersistentFlags()
	pf.StringVarP(&configFile, "config", "c", "", "config file (yaml), merged over the defaults")
	pf.Uint64Var(&seed, "seed", 0, "random seed, 0 picks one")
	pf.StringVar(&logLevel, "log-level", "info", "log level: trace, debug, info, warn, error, none")
	pf.Float64Var(&dpr, "dpr", 1, "device pixel ratio of the primary surface")
	pf.StringVarP(&outDir, "out", "o", ".", "output directory")
	pf.IntVar(&width, "width", 0, "override canvas width")
	pf.IntVar(&height, "height", 0, "override canvas height")
	pf.IntVar(&clusters, "clusters", -1, "override cluster count")

	renderCmd := &cobra.Command{
		Use:   "render",
		Short: "render the primary surface to a png",
		RunE:  runRender,
	}

	var sizes []string
	exportCmd := &cobra.Command{
		Use:   "export",
		Short: "render one grid at one or more resolutions",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runExport(sizes)
		},
	}
	exportCmd.Flags().StringSliceVar(&sizes, "size", nil, "output size WxH, repeatable (default: canvas size)")

	var csvPath string
	dumpCmd := &cobra.Command{
		Use:   "dump",
		Short: "write the populated grid as csv",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runDump(csvPath)
		},
	}
	dumpCmd.Flags().StringVar(&csvPath, "csv", "-", "csv output path, - for stdout")

	watchCmd := &cobra.Command{
		Use:   "watch",
		Short: "re-render whenever the config file changes",
		RunE:  runWatch,
	}

	defaultsCmd := &cobra.Command{
		Use:   "defaults",
		Short: "print the default configuration",
		RunE: func(cmd *cobra.Command, args []string) error {
			_, err := cmd.OutOrStdout().Write(config.DefaultsYAML())
			return err
		},
	}

	checkCmd := &cobra.Command{
		Use:   "check",
		Short: "validate the configuration",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig()
			if err != nil {
				return err
			}
			if err := cfg.Validate(); err != nil {
				return fmt.Errorf("invalid config: %w", err)
			}
			if !cfg.SpacingValid() {
				log.Warn().Msg("grid spacing is not positive, the grid will be empty")
			}
			fmt.Fprintln(cmd.OutOrStdout(), "config ok")
			return nil
		},
	}

	rootCmd.AddCommand(renderCmd, exportCmd, dumpCmd, watchCmd, defaultsCmd, checkCmd)

	if err := rootCmd.Execute(); err != nil {
		log.Error().Err(err).Msg("iconwall failed")
		os.Exit(1)
	}
}

// loadConfig reads the config file and applies flag overrides.
func loadConfig() (*config.Config, error) {
	cfg, err := config.Load(configFile)
	if err != nil {
		return nil, err
	}
	if width > 0 {
		cfg.Canvas.Width = width
	}
	if height > 0 {
		cfg.Canvas.Height = height
	}
	if clusters >= 0 {
		cfg.Clustering.Count = clusters
	}
	return cfg, nil
}

// newGenerator loads the config and runs the first generation.
func newGenerator() (*iconwall.Generator, *config.Config, error) {
	cfg, err := loadConfig()
	if err != nil {
		return nil, nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, nil, fmt.Errorf("invalid config: %w", err)
	}

	opts := []iconwall.Option{
		iconwall.WithLogger(log.Logger),
		iconwall.WithDevicePixelRatio(dpr),
		iconwall.WithFont(cfg.Font.Path, cfg.Font.Fallback),
	}
	if seed != 0 {
		opts = append(opts, iconwall.WithSeed(seed))
	}
	gen, err := iconwall.New(opts...)
	if err != nil {
		return nil, nil, err
	}
	if err := gen.Regenerate(*cfg); err != nil {
		return nil, nil, err
	}
	return gen, cfg, nil
}

func runRender(cmd *cobra.Command, args []string) error {
	gen, _, err := newGenerator()
	if err != nil {
		return err
	}
	_, err = writePrimary(gen)
	return err
}

// writePrimary saves the primary surface, named by its pixel size.
func writePrimary(gen *iconwall.Generator) (string, error) {
	s := gen.Surface()
	w, h := s.RGBAImage.Width(), s.RGBAImage.Height()
	path := filepath.Join(outDir, iconwall.ExportFilename(iconwall.AppName, w, h))
	if err := imageutil.SavePNG(s.Image(), path); err != nil {
		return "", err
	}
	log.Info().Str("path", path).Interface("stats", gen.Stats()).Msg("rendered wallpaper")
	return path, nil
}

func runExport(sizes []string) error {
	gen, cfg, err := newGenerator()
	if err != nil {
		return err
	}
	if len(sizes) == 0 {
		sizes = []string{fmt.Sprintf("%dx%d", cfg.Canvas.Width, cfg.Canvas.Height)}
	}
	for _, spec := range sizes {
		w, h, err := parseSize(spec)
		if err != nil {
			return err
		}
		if _, err := gen.ExportPNG(outDir, w, h); err != nil {
			return err
		}
	}
	return nil
}

func runDump(csvPath string) error {
	gen, _, err := newGenerator()
	if err != nil {
		return err
	}
	if csvPath == "-" {
		return iconwall.WriteGridCSV(os.Stdout, gen.Grid())
	}
	f, err := os.Create(csvPath)
	if err != nil {
		return fmt.Errorf("creating %s: %w", csvPath, err)
	}
	defer f.Close()
	if err := iconwall.WriteGridCSV(f, gen.Grid()); err != nil {
		return err
	}
	return f.Close()
}
