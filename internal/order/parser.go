package order

import (
	"strings"

	"github.com/mskaar/ordrecsv/internal/layout"
)

// Line markers from the order confirmation template. The document is
// Norwegian; the literals must match the printed text exactly.
const (
	sectionMarker        = "Jobb navn:"
	startDatePrefix      = "Start dato"
	returnDatePrefix     = "Retur dato"
	usageDaysPrefix      = "Brukerdager"
	totalEquipmentPrefix = "Total utstyr:"
	totalExclVATPrefix   = "Total eks.mva"

	tableHeaderLead = "Pos"
	tableHeaderQty  = "Antall"
	tableHeaderName = "Navn"
)

// Parser runs the single stateful pass that turns ordered lines into
// finalized sections. Exactly one section is open at a time; rows accumulate
// in pending until a new table header or the section closes. A Parser is not
// safe for concurrent use, but Parse resets all state so a single Parser can
// process documents back to back.
type Parser struct {
	current  *Section
	inTable  bool
	pending  []Row
	sections []Section
}

// NewParser creates a parser with empty state.
func NewParser() *Parser {
	return &Parser{}
}

// Parse consumes pages in ascending page order, each page's lines in order,
// and returns the finalized sections. Lines that match no classification are
// dropped silently; that is policy, not an error.
func (p *Parser) Parse(pages []layout.PageLines) []Section {
	p.reset()

	for _, page := range pages {
		for _, line := range page.Lines {
			p.consumeLine(line.Text)
		}
	}
	p.endCurrentSection()

	sections := p.sections
	p.sections = nil
	return sections
}

func (p *Parser) reset() {
	p.current = nil
	p.inTable = false
	p.pending = nil
	p.sections = nil
}

// consumeLine classifies one line and applies its state transition. The
// checks are ordered by priority and mutually exclusive.
func (p *Parser) consumeLine(raw string) {
	line := strings.TrimSpace(raw)

	switch {
	case strings.HasPrefix(line, sectionMarker):
		p.endCurrentSection()
		p.current = newSection(valueAfter(line, sectionMarker))

	case p.current == nil:
		// Nothing before the first section marker is meaningful.

	case strings.HasPrefix(line, startDatePrefix):
		p.current.StartDate = valueAfter(line, startDatePrefix)

	case strings.HasPrefix(line, returnDatePrefix):
		p.current.ReturnDate = valueAfter(line, returnDatePrefix)

	case strings.HasPrefix(line, usageDaysPrefix):
		p.current.UsageDays = valueAfter(line, usageDaysPrefix)

	case strings.HasPrefix(line, totalEquipmentPrefix):
		p.current.Totals[TotalEquipment] = valueAfter(line, totalEquipmentPrefix)

	case strings.HasPrefix(line, totalExclVATPrefix):
		p.current.Totals[TotalExclVAT] = valueAfter(line, totalExclVATPrefix)

	case isTableHeader(line):
		p.flushPending()
		p.inTable = true

	case p.inTable:
		p.consumeRow(line)
	}
}

// consumeRow appends a clean 3-field line as a new row. A line that does not
// split into 3 fields is a wrapped continuation of the previous row's name,
// never a new row.
func (p *Parser) consumeRow(line string) {
	fields := splitRowFields(line)
	if len(fields) == 3 {
		p.pending = append(p.pending, Row{Pos: fields[0], Quantity: fields[1], Name: fields[2]})
		return
	}
	if len(p.pending) > 0 {
		p.pending[len(p.pending)-1].Name += " " + line
	}
}

// flushPending stores the accumulating rows as a completed table block on
// the open section.
func (p *Parser) flushPending() {
	if len(p.pending) == 0 {
		return
	}
	if p.current != nil {
		p.current.Tables = append(p.current.Tables, TableBlock{Rows: p.pending})
	}
	p.pending = nil
}

// endCurrentSection closes the open section, if any: pending rows become the
// final table block, the section is finalized and collected, and parser
// state resets for the next section.
func (p *Parser) endCurrentSection() {
	if p.current == nil {
		return
	}
	p.flushPending()
	p.current.finalize()
	p.sections = append(p.sections, *p.current)
	p.current = nil
	p.inTable = false
	p.pending = nil
}

// isTableHeader matches the equipment table header line: it leads with the
// position column label and mentions the quantity and name labels anywhere.
func isTableHeader(line string) bool {
	return strings.HasPrefix(line, tableHeaderLead) &&
		strings.Contains(line, tableHeaderQty) &&
		strings.Contains(line, tableHeaderName)
}

// valueAfter strips a matched prefix and surrounding whitespace.
func valueAfter(line, prefix string) string {
	return strings.TrimSpace(strings.TrimPrefix(line, prefix))
}

// splitRowFields splits a table line into at most 3 whitespace-delimited
// fields. The first two split eagerly; the remainder stays verbatim as the
// third field.
func splitRowFields(line string) []string {
	fields := make([]string, 0, 3)
	rest := line
	for i := 0; i < 2; i++ {
		rest = strings.TrimLeft(rest, " \t")
		if rest == "" {
			return fields
		}
		cut := strings.IndexAny(rest, " \t")
		if cut < 0 {
			return append(fields, rest)
		}
		fields = append(fields, rest[:cut])
		rest = rest[cut:]
	}
	rest = strings.TrimLeft(rest, " \t")
	if rest != "" {
		fields = append(fields, rest)
	}
	return fields
}
