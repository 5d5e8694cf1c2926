// Package order parses reconstructed document lines into job sections and
// their equipment tables.
package order

// Totals keys recorded on a section when the matching summary line appears.
const (
	TotalEquipment = "total_equipment"
	TotalExclVAT   = "total_excl_vat"
)

// Row is one equipment table entry: position, quantity, and name.
type Row struct {
	Pos      string
	Quantity string
	Name     string
}

// TableBlock is one contiguous equipment table within a section. A section
// holds several blocks when a new table header appears mid-section.
type TableBlock struct {
	Rows []Row
}

// Section is one job record, spanning from its start marker to the next
// start marker or end of input. It accepts fields and rows while open and
// becomes terminal once finalized.
type Section struct {
	Name       string
	StartDate  string
	ReturnDate string
	UsageDays  string
	Totals     map[string]string
	Tables     []TableBlock

	finalized bool
}

// newSection opens a section with its name fixed for its lifetime.
func newSection(name string) *Section {
	return &Section{
		Name:   name,
		Totals: make(map[string]string),
	}
}

// finalize marks the section terminal. The transition happens exactly once;
// a finalized section is never reopened or re-marked.
func (s *Section) finalize() {
	s.finalized = true
}

// Finalized reports whether the section has been closed.
func (s *Section) Finalized() bool {
	return s.finalized
}

// RowCount returns the total number of rows across all table blocks.
func (s *Section) RowCount() int {
	n := 0
	for _, t := range s.Tables {
		n += len(t.Rows)
	}
	return n
}

// HasRows reports whether the section carries at least one table row.
func (s *Section) HasRows() bool {
	return s.RowCount() > 0
}
