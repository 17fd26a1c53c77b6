// Package pipeline drives the core components (C1-C3) over a VCF stream:
// reading and gzip-sniffing the input the way the donor's internal/vcf
// parser did, splitting each call line into its raw columns, and fanning
// the lines out across a worker pool whose results are re-serialized back
// into line order.
package pipeline

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/klauspost/compress/gzip"
)

// CallLine is one split, not-yet-interpreted VCF data line: the raw columns
// a caller hands to info.Parse, sample.Parse, and factory.Create.
type CallLine struct {
	LineNumber  int
	Chrom       string
	Pos         string
	ID          string
	Ref         string
	Alts        []string
	Qual        string
	Filter      string
	InfoRaw     string
	FormatRaw   string // empty if the line has no FORMAT/sample columns
	SampleCols  []string
}

// Reader reads call lines from a VCF stream, transparently decompressing
// gzip/BGZF input the way internal/vcf.Parser's magic-byte sniff did in the
// donor.
type Reader struct {
	reader      *bufio.Reader
	file        *os.File
	gzipReader  *gzip.Reader
	lineNumber  int
	headerLines []string
	sampleNames []string
}

// Open opens path (or stdin, for "-") and parses its header.
func Open(path string) (*Reader, error) {
	if path == "-" {
		return NewReader(os.Stdin)
	}

	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open vcf file: %w", err)
	}

	r := &Reader{file: file}

	magic := make([]byte, 2)
	if _, err := io.ReadFull(file, magic); err != nil {
		file.Close()
		return nil, fmt.Errorf("read vcf header: %w", err)
	}
	if _, err := file.Seek(0, io.SeekStart); err != nil {
		file.Close()
		return nil, fmt.Errorf("seek vcf file: %w", err)
	}

	if magic[0] == 0x1f && magic[1] == 0x8b {
		gzr, err := gzip.NewReader(file)
		if err != nil {
			file.Close()
			return nil, fmt.Errorf("create gzip reader: %w", err)
		}
		r.gzipReader = gzr
		r.reader = bufio.NewReader(gzr)
	} else {
		r.reader = bufio.NewReader(file)
	}

	if err := r.parseHeader(); err != nil {
		r.Close()
		return nil, err
	}
	return r, nil
}

// NewReader wraps an already-open stream (e.g. stdin), assumed uncompressed.
func NewReader(r io.Reader) (*Reader, error) {
	reader := &Reader{reader: bufio.NewReader(r)}
	if err := reader.parseHeader(); err != nil {
		return nil, err
	}
	return reader, nil
}

// SampleNames returns the sample column names from the #CHROM header line.
func (r *Reader) SampleNames() []string {
	return r.sampleNames
}

func (r *Reader) parseHeader() error {
	for {
		line, err := r.reader.ReadString('\n')
		if err != nil {
			if err == io.EOF {
				break
			}
			return fmt.Errorf("read header at line %d: %w", r.lineNumber, err)
		}
		r.lineNumber++
		line = strings.TrimRight(line, "\r\n")

		if strings.HasPrefix(line, "##") {
			r.headerLines = append(r.headerLines, line)
			continue
		}
		if strings.HasPrefix(line, "#CHROM") {
			r.headerLines = append(r.headerLines, line)
			fields := strings.Split(line, "\t")
			if len(fields) > 9 {
				r.sampleNames = fields[9:]
			}
			return nil
		}
		return fmt.Errorf("line %d: expected #CHROM header line, got %q", r.lineNumber, line)
	}
	return fmt.Errorf("no #CHROM header line found")
}

// Next reads and splits the next data line. Returns nil, nil at EOF.
func (r *Reader) Next() (*CallLine, error) {
	line, err := r.reader.ReadString('\n')
	if err != nil {
		if err == io.EOF {
			if line == "" {
				return nil, nil
			}
		} else {
			return nil, fmt.Errorf("read line %d: %w", r.lineNumber+1, err)
		}
	}
	r.lineNumber++
	line = strings.TrimRight(line, "\r\n")
	if line == "" {
		return r.Next()
	}
	return r.splitLine(line)
}

func (r *Reader) splitLine(line string) (*CallLine, error) {
	fields := strings.Split(line, "\t")
	if len(fields) < 8 {
		return nil, fmt.Errorf("line %d: expected at least 8 columns, got %d", r.lineNumber, len(fields))
	}

	cl := &CallLine{
		LineNumber: r.lineNumber,
		Chrom:      fields[0],
		Pos:        fields[1],
		ID:         fields[2],
		Ref:        fields[3],
		Alts:       strings.Split(fields[4], ","),
		Qual:       fields[5],
		Filter:     fields[6],
		InfoRaw:    fields[7],
	}
	if len(fields) > 8 {
		cl.FormatRaw = fields[8]
		cl.SampleCols = fields[9:]
	}
	return cl, nil
}

// Close releases the underlying file and gzip reader, if any.
func (r *Reader) Close() error {
	if r.gzipReader != nil {
		r.gzipReader.Close()
	}
	if r.file != nil {
		return r.file.Close()
	}
	return nil
}

// LineNumber returns the most recently read line number.
func (r *Reader) LineNumber() int {
	return r.lineNumber
}
