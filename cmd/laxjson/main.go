// Command laxjson repairs malformed JSON read from a file or stdin.
package main

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/hexops/gotextdiff"
	"github.com/hexops/gotextdiff/myers"
	"github.com/hexops/gotextdiff/span"
	"github.com/spf13/cobra"

	"github.com/laxjson/laxjson"
	"github.com/laxjson/laxjson/stream"
)

func main() {
	cfg := NewConfig()

	rootCmd := &cobra.Command{
		Use:           "laxjson [flags] [file]",
		Short:         "Repair malformed JSON",
		Long:          `laxjson repairs malformed JSON read from a file argument or standard input.`,
		Args:          cobra.MaximumNArgs(1),
		SilenceErrors: true,
		SilenceUsage:  true,
		RunE: func(_ *cobra.Command, args []string) error {
			var path string
			if len(args) == 1 {
				path = args[0]
			}
			return run(cfg, path)
		},
	}

	cfg.RegisterFlags(rootCmd.Flags())

	if err := rootCmd.Execute(); err != nil {
		var repairErr *laxjson.Error
		if errors.As(err, &repairErr) {
			fmt.Fprintf(os.Stderr, "%s at position %d\n", repairErr.Message, repairErr.Position)
		} else {
			fmt.Fprintln(os.Stderr, err)
		}
		os.Exit(1)
	}
}

func run(cfg *Config, path string) error {
	if path == "" && cfg.Overwrite {
		return errors.New("cannot use --overwrite with standard input")
	}

	src, err := readInput(path)
	if err != nil {
		return err
	}

	repaired, err := repair(cfg, string(src))
	if err != nil {
		return err
	}

	switch {
	case cfg.Diff:
		printDiff(path, string(src), repaired)
	case cfg.Overwrite:
		return os.WriteFile(path, []byte(repaired), 0o644)
	default:
		fmt.Print(repaired)
	}
	return nil
}

func readInput(path string) ([]byte, error) {
	if path == "" {
		return io.ReadAll(os.Stdin)
	}
	return os.ReadFile(path)
}

func repair(cfg *Config, src string) (string, error) {
	if cfg.WindowSize <= 0 {
		return laxjson.Repair(src)
	}

	var out bytes.Buffer
	err := stream.Transform(bytes.NewReader([]byte(src)), &out, stream.Options{
		WindowSize: cfg.WindowSize,
		ChunkSize:  cfg.ChunkSize,
	})
	if err != nil {
		return "", err
	}
	return out.String(), nil
}

func printDiff(filename, src, repaired string) {
	if filename == "" {
		filename = "<standard input>"
	}
	origFile := filename + ".orig"
	edits := myers.ComputeEdits(span.URIFromPath(origFile), src, repaired)
	diff := fmt.Sprint(gotextdiff.ToUnified(origFile, filename, src, edits))
	if diff == "" {
		return
	}
	fmt.Printf("diff %s %s\n", origFile, filename)
	fmt.Println(diff)
}
