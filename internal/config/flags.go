package config

import (
	"flag"
	"io"
)

// Flags is the flag set shared by every groundtool subcommand.
var Flags = flag.NewFlagSet("groundtool", flag.ContinueOnError)

var (
	flagConfig  = Flags.String("config", "", "Path to config file")
	flagDebug   = Flags.Bool("debug", false, "Enable debug logging")
	flagCols    = Flags.Int("cols", 0, "Mesh columns")
	flagRows    = Flags.Int("rows", 0, "Mesh rows")
	flagAtlas   = Flags.Int("atlas", 0, "Atlas columns when no tileset is used")
	flagTileset = Flags.String("tileset", "", "Path to tileset file")
	flagSeed    = Flags.Int64("seed", 0, "Seed heights with Perlin noise using this seed")
)

// ParseFlags parses subcommand flags and returns the remaining arguments.
func ParseFlags(args []string, usage io.Writer) ([]string, error) {
	Flags.SetOutput(usage)
	if err := Flags.Parse(args); err != nil {
		return nil, err
	}
	return Flags.Args(), nil
}

// ConfigPath returns the explicit config path if provided via --config flag.
func ConfigPath() string {
	return *flagConfig
}

// applyFlags applies CLI flag overrides to the config.
func applyFlags(cfg *Config) {
	if *flagDebug {
		cfg.Logging.Level = "debug"
	}
	if *flagCols > 0 {
		cfg.Mesh.Cols = *flagCols
	}
	if *flagRows > 0 {
		cfg.Mesh.Rows = *flagRows
	}
	if *flagAtlas > 0 {
		cfg.Mesh.AtlasColumns = *flagAtlas
	}
	if *flagTileset != "" {
		cfg.Tileset.Path = *flagTileset
	}
	if *flagSeed != 0 {
		cfg.Noise.Enabled = true
		cfg.Noise.Seed = *flagSeed
	}
}
