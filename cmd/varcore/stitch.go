package main

import (
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/varcore/varcore/internal/bgzfio"
	"github.com/varcore/varcore/internal/stitch"
)

func newStitchCmd() *cobra.Command {
	var (
		outputPath string
		verbose    bool
	)

	cmd := &cobra.Command{
		Use:   "stitch <shard.json.gz:shard.idx.json>...",
		Short: "Merge BGZF-compressed annotated JSON shards into one output",
		Long: `Each argument names one shard as "<bgzf-json-path>:<sidecar-index-path>".
Shards are merged in the order given: positions sections are concatenated
block-for-block, keeping the first shard's header block and dropping the
header block of every later shard, and the trailing genes sections are
deduplicated and lexicographically sorted.`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runStitch(args, outputPath, newLogger(verbose))
		},
	}

	cmd.Flags().StringVarP(&outputPath, "output", "o", "", "output file path (default: stdout)")
	cmd.Flags().BoolVar(&verbose, "verbose", false, "enable development-mode (human-readable) logging")

	return cmd
}

func runStitch(shardArgs []string, outputPath string, logger *zap.Logger) error {
	defer logger.Sync()

	var inputs []stitch.Input
	var closers []func() error
	defer func() {
		for _, c := range closers {
			c()
		}
	}()

	for _, arg := range shardArgs {
		jsonPath, idxPath, ok := strings.Cut(arg, ":")
		if !ok {
			return fmt.Errorf("shard argument %q: expected <json-path>:<index-path>", arg)
		}

		jsonFile, err := os.Open(jsonPath)
		if err != nil {
			return fmt.Errorf("open shard %s: %w", jsonPath, err)
		}
		closers = append(closers, jsonFile.Close)

		idxFile, err := os.Open(idxPath)
		if err != nil {
			return fmt.Errorf("open index %s: %w", idxPath, err)
		}
		defer idxFile.Close()

		idx, err := bgzfio.DecodeSidecarIndex(idxFile)
		if err != nil {
			return fmt.Errorf("decode index %s: %w", idxPath, err)
		}

		inputs = append(inputs, stitch.Input{JSON: jsonFile, Index: idx})
		logger.Debug("loaded shard", zap.String("json", jsonPath), zap.String("index", idxPath))
	}

	var out *os.File
	if outputPath == "" {
		out = os.Stdout
	} else {
		var err error
		out, err = os.Create(outputPath)
		if err != nil {
			return fmt.Errorf("create output %s: %w", outputPath, err)
		}
		defer out.Close()
	}

	if err := stitch.Stitch(inputs, out); err != nil {
		logger.Error("stitch failed", zap.Error(err))
		return fmt.Errorf("stitch: %w", err)
	}

	logger.Info("stitch complete", zap.Int("shards", len(inputs)))
	return nil
}
