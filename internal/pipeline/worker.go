package pipeline

import (
	"runtime"
	"sync"

	"go.uber.org/zap"

	"github.com/varcore/varcore/internal/factory"
	"github.com/varcore/varcore/internal/info"
	"github.com/varcore/varcore/internal/sample"
	"github.com/varcore/varcore/internal/variant"
)

// LineJob is one call line queued for processing, tagged with its arrival
// sequence number so results can be re-serialized in order.
type LineJob struct {
	Seq  int
	Line *CallLine
}

// LineResult is the outcome of running C1-C3 over a single call line.
type LineResult struct {
	Seq      int
	Line     *CallLine
	Variants []*variant.Variant
	Samples  []*sample.Sample
	Err      error
}

// Processor holds the read-only collaborators C1-C3 need.
type Processor struct {
	ChromLookup variant.ChromosomeLookup
	RefMinor    variant.RefMinorProvider
	Logger      *zap.Logger
}

// Process runs the full C1 -> C3 chain over one call line, then C2 over
// every sample column using the line's FORMAT indices.
func (p *Processor) Process(line *CallLine) ([]*variant.Variant, []*sample.Sample, error) {
	logger := p.Logger
	if logger == nil {
		logger = zap.NewNop()
	}

	infoData, err := info.Parse(line.InfoRaw)
	if err != nil {
		logger.Warn("failed to parse INFO column",
			zap.Int("line", line.LineNumber), zap.String("chrom", line.Chrom), zap.Error(err))
		return nil, nil, err
	}

	pos, err := factory.ParsePos(line.Pos)
	if err != nil {
		logger.Warn("failed to parse POS column",
			zap.Int("line", line.LineNumber), zap.String("chrom", line.Chrom), zap.Error(err))
		return nil, nil, err
	}

	variants, err := factory.Create(p.ChromLookup, p.RefMinor, line.Chrom, pos, line.Ref, line.Alts, infoData, nil)
	if err != nil {
		logger.Warn("failed to construct variant",
			zap.Int("line", line.LineNumber), zap.String("chrom", line.Chrom), zap.Int64("pos", pos), zap.Error(err))
		return nil, nil, err
	}

	var samples []*sample.Sample
	if line.FormatRaw != "" {
		indices := sample.ParseFormatIndices(line.FormatRaw)
		multiAllelic := len(line.Alts) > 1
		for i, col := range line.SampleCols {
			alt := line.Alts[0]
			if i < len(line.Alts) {
				alt = line.Alts[i]
			}
			samples = append(samples, sample.Parse(indices, col, sample.Options{
				Ref:          line.Ref,
				Alt:          alt,
				MultiAllelic: multiAllelic,
			}))
		}
	}

	return variants, samples, nil
}

// RunWorkers fans jobs out across a pool of workers, each running fn, and
// streams results back in arrival order (not sequence order); pair with
// OrderedCollect to restore sequence order. workers <= 0 defaults to
// runtime.NumCPU(), mirroring the donor's ParallelAnnotate
// (internal/annotate/parallel.go).
func RunWorkers(jobs <-chan LineJob, workers int, fn func(*CallLine) ([]*variant.Variant, []*sample.Sample, error)) <-chan LineResult {
	if workers <= 0 {
		workers = runtime.NumCPU()
	}

	results := make(chan LineResult, 2*workers)
	var wg sync.WaitGroup
	wg.Add(workers)

	for i := 0; i < workers; i++ {
		go func() {
			defer wg.Done()
			for job := range jobs {
				variants, samples, err := fn(job.Line)
				results <- LineResult{
					Seq:      job.Seq,
					Line:     job.Line,
					Variants: variants,
					Samples:  samples,
					Err:      err,
				}
			}
		}()
	}

	go func() {
		wg.Wait()
		close(results)
	}()

	return results
}

// OrderedCollect calls fn for each result in sequence-number order,
// buffering out-of-order arrivals in a pending map. Blocks until results is
// closed. If fn returns an error, remaining results are drained so workers
// never block on a full channel, then the error is returned.
func OrderedCollect(results <-chan LineResult, fn func(LineResult) error) error {
	pending := make(map[int]LineResult)
	nextSeq := 0

	for r := range results {
		pending[r.Seq] = r

		for {
			rr, ok := pending[nextSeq]
			if !ok {
				break
			}
			delete(pending, nextSeq)
			nextSeq++
			if err := fn(rr); err != nil {
				for range results {
				}
				return err
			}
		}
	}

	return nil
}
