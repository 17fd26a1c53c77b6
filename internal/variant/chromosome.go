// Package variant holds the core data model shared by the info parser, the
// sample field extractor, and the variant factory: chromosomes, variants,
// breakends, and the two read-only collaborators the factory borrows
// (chromosome lookup and reference-minor-allele lookup).
package variant

// Chromosome is an opaque genomic reference sequence identifier. Equality is
// by identity: the core never constructs one except through a
// ChromosomeLookup, so two resolved Chromosome values naming the same
// sequence are always the same pointer. Unrecognized names are the
// exception: each failed lookup returns a new EmptyChromosome.
type Chromosome struct {
	// Name is the ensembl-style short name, e.g. "1", "X", "MT".
	Name string
	// RefName is the reference-style name, e.g. "chr1", "chrX", "chrM".
	RefName string
	empty   bool
}

// NewChromosome constructs a resolved chromosome. Collaborator
// implementations use this; callers never construct a Chromosome by hand.
func NewChromosome(name, refName string) *Chromosome {
	return &Chromosome{Name: name, RefName: refName}
}

// EmptyChromosome returns the synthetic chromosome a failed lookup yields.
// It carries the literal, unrecognized name so the caller can still report
// it, but IsEmpty distinguishes it from a resolved chromosome.
func EmptyChromosome(literalName string) *Chromosome {
	return &Chromosome{Name: literalName, RefName: literalName, empty: true}
}

// IsEmpty reports whether this chromosome came from an unrecognized name.
func (c *Chromosome) IsEmpty() bool {
	return c == nil || c.empty
}

// ChromosomeLookup resolves a textual chromosome name to a canonical
// Chromosome. Out of scope for this core (the real implementation is an
// external collaborator); StaticChromosomeTable below is a reference
// implementation adequate for tests and small deployments.
type ChromosomeLookup interface {
	Lookup(name string) *Chromosome
}

// RefMinorProvider answers whether a site is ref-minor and, if so, what the
// global-major allele is. Out of scope for this core; MapRefMinorProvider is
// a reference implementation.
type RefMinorProvider interface {
	GlobalMajorAllele(chrom *Chromosome, pos int64) (allele string, ok bool)
}

// StaticChromosomeTable is a read-only, map-backed ChromosomeLookup. It
// indexes chromosomes the way the donor annotation cache indexes transcripts
// by chromosome: a plain map keyed by the name under which callers will
// query it, built once and never mutated after construction.
type StaticChromosomeTable struct {
	byName map[string]*Chromosome
}

// NewStaticChromosomeTable builds a lookup table from (name, refName) pairs.
// Both the ensembl-style and reference-style spellings of a chromosome
// resolve to the same *Chromosome, so identity equality holds regardless of
// which spelling a caller used.
func NewStaticChromosomeTable(entries [][2]string) *StaticChromosomeTable {
	t := &StaticChromosomeTable{byName: make(map[string]*Chromosome, len(entries)*2)}
	for _, e := range entries {
		c := NewChromosome(e[0], e[1])
		t.byName[e[0]] = c
		t.byName[e[1]] = c
	}
	return t
}

// Lookup resolves name to a Chromosome, or a synthetic empty one if
// unrecognized.
func (t *StaticChromosomeTable) Lookup(name string) *Chromosome {
	if c, ok := t.byName[name]; ok {
		return c
	}
	return EmptyChromosome(name)
}

// MapRefMinorProvider is a read-only, map-backed RefMinorProvider keyed by
// (chromosome name, position).
type MapRefMinorProvider struct {
	majors map[refMinorKey]string
}

type refMinorKey struct {
	chrom string
	pos   int64
}

// NewMapRefMinorProvider builds an empty provider; sites are added with Set.
func NewMapRefMinorProvider() *MapRefMinorProvider {
	return &MapRefMinorProvider{majors: make(map[refMinorKey]string)}
}

// Set registers a global-major allele for a site. Intended for test setup
// and small static deployments, not for production-scale ref-minor tables.
func (p *MapRefMinorProvider) Set(chrom *Chromosome, pos int64, majorAllele string) {
	p.majors[refMinorKey{chrom.Name, pos}] = majorAllele
}

// GlobalMajorAllele implements RefMinorProvider.
func (p *MapRefMinorProvider) GlobalMajorAllele(chrom *Chromosome, pos int64) (string, bool) {
	if chrom == nil {
		return "", false
	}
	allele, ok := p.majors[refMinorKey{chrom.Name, pos}]
	return allele, ok
}
