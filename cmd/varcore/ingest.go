package main

import (
	"fmt"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"go.uber.org/zap"

	"github.com/varcore/varcore/internal/factory"
	"github.com/varcore/varcore/internal/pipeline"
	"github.com/varcore/varcore/internal/store"
	"github.com/varcore/varcore/internal/variant"
)

// standardChromosomes is the default ChromosomeLookup when no explicit
// chromosome table is configured: the 22 autosomes plus X/Y/MT, both
// ensembl-style and "chr"-prefixed spellings.
func standardChromosomes() *variant.StaticChromosomeTable {
	entries := make([][2]string, 0, 25)
	for i := 1; i <= 22; i++ {
		name := fmt.Sprintf("%d", i)
		entries = append(entries, [2]string{name, "chr" + name})
	}
	entries = append(entries, [2]string{"X", "chrX"}, [2]string{"Y", "chrY"}, [2]string{"MT", "chrM"})
	return variant.NewStaticChromosomeTable(entries)
}

func newIngestCmd() *cobra.Command {
	var (
		workers   int
		storePath string
		verbose   bool
	)

	cmd := &cobra.Command{
		Use:   "ingest <input.vcf>",
		Short: "Parse a VCF stream into normalized variants and samples",
		Long: `Reads a VCF file (transparently gzip/BGZF-decompressed) or "-" for
uncompressed stdin, runs the Info parser, Sample Field Extractor, and Variant Factory over every
call line using a bounded worker pool, and persists the results to the
embedded variants/samples store.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if workers == 0 {
				workers = viper.GetInt("workers")
			}
			if storePath == "" {
				storePath = viper.GetString("store.path")
			}
			return runIngest(args[0], workers, storePath, newLogger(verbose))
		},
	}

	cmd.Flags().IntVar(&workers, "workers", 0, "worker pool size (0 = runtime.NumCPU, or config workers)")
	cmd.Flags().StringVar(&storePath, "store", "", "DuckDB file path (empty = in-memory, or config store.path)")
	cmd.Flags().BoolVar(&verbose, "verbose", false, "enable development-mode (human-readable) logging")

	return cmd
}

func runIngest(path string, workers int, storePath string, logger *zap.Logger) error {
	defer logger.Sync()

	reader, err := pipeline.Open(path)
	if err != nil {
		return fmt.Errorf("open input: %w", err)
	}
	defer reader.Close()

	db, err := store.Open(storePath)
	if err != nil {
		return fmt.Errorf("open store: %w", err)
	}
	defer db.Close()

	proc := &pipeline.Processor{
		ChromLookup: standardChromosomes(),
		RefMinor:    variant.NewMapRefMinorProvider(),
		Logger:      logger,
	}

	jobs := make(chan pipeline.LineJob, 2*workerCountOrDefault(workers))
	go func() {
		defer close(jobs)
		seq := 0
		for {
			line, err := reader.Next()
			if err != nil {
				logger.Error("failed to read line", zap.Error(err))
				return
			}
			if line == nil {
				return
			}
			jobs <- pipeline.LineJob{Seq: seq, Line: line}
			seq++
		}
	}()

	results := pipeline.RunWorkers(jobs, workers, proc.Process)

	var variantCount, sampleCount int
	err = pipeline.OrderedCollect(results, func(r pipeline.LineResult) error {
		if r.Err != nil {
			return fmt.Errorf("line %d: %w", r.Line.LineNumber, r.Err)
		}

		var variantRecords []store.VariantRecord
		for _, v := range r.Variants {
			variantRecords = append(variantRecords, store.VariantRecord{
				Chrom: r.Line.Chrom, Pos: v.Start, Ref: v.Ref, Alt: v.Alt, V: v,
			})
		}
		if err := db.WriteVariants(variantRecords); err != nil {
			return fmt.Errorf("line %d: write variants: %w", r.Line.LineNumber, err)
		}

		pos := mustPos(r.Line)
		var sampleRecords []store.SampleRecord
		for idx, s := range r.Samples {
			alt := r.Line.Alts[0]
			if idx < len(r.Line.Alts) {
				alt = r.Line.Alts[idx]
			}
			sampleRecords = append(sampleRecords, store.SampleRecord{
				Chrom: r.Line.Chrom, Pos: pos, Ref: r.Line.Ref, Alt: alt, SampleIndex: idx, S: s,
			})
		}
		if err := db.WriteSamples(sampleRecords); err != nil {
			return fmt.Errorf("line %d: write samples: %w", r.Line.LineNumber, err)
		}

		variantCount += len(r.Variants)
		sampleCount += len(r.Samples)
		return nil
	})
	if err != nil {
		return err
	}

	logger.Info("ingest complete", zap.Int("variants", variantCount), zap.Int("samples", sampleCount))
	return nil
}

func workerCountOrDefault(workers int) int {
	if workers <= 0 {
		return 4
	}
	return workers
}

func mustPos(line *pipeline.CallLine) int64 {
	pos, err := factory.ParsePos(line.Pos)
	if err != nil {
		return 0
	}
	return pos
}
