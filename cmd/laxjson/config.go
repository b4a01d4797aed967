package main

import "github.com/spf13/pflag"

// Flags holds CLI flag names, allowing callers to customize flag names while
// keeping sensible defaults via [NewConfig].
type Flags struct {
	Overwrite  string
	Diff       string
	WindowSize string
	ChunkSize  string
}

// Config holds CLI flag values for the laxjson command.
//
// Create instances with [NewConfig] and register CLI flags with
// [Config.RegisterFlags].
type Config struct {
	Flags Flags

	Overwrite  bool
	Diff       bool
	WindowSize int
	ChunkSize  int
}

// NewConfig returns a new [Config] with default flag names and values.
func NewConfig() *Config {
	return &Config{
		Flags: Flags{
			Overwrite:  "overwrite",
			Diff:       "diff",
			WindowSize: "window-size",
			ChunkSize:  "chunk-size",
		},
	}
}

// RegisterFlags adds the command's flags to the given [*pflag.FlagSet].
func (c *Config) RegisterFlags(flags *pflag.FlagSet) {
	flags.BoolVarP(&c.Overwrite, c.Flags.Overwrite, "w", false,
		"write result to (source) file instead of stdout")
	flags.BoolVarP(&c.Diff, c.Flags.Diff, "d", false,
		"display a diff instead of the repaired output")
	flags.IntVar(&c.WindowSize, c.Flags.WindowSize, 0,
		"bound the longest scan/back-patch run before failing with a buffer-exceeded error (0 = unbounded)")
	flags.IntVar(&c.ChunkSize, c.Flags.ChunkSize, 0,
		"read/write in chunks of this many bytes when --window-size is set (0 = default)")
}
