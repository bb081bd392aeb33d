package completion

// CandidateKind tells the completion UI what a candidate represents, which
// drives rendering and paste behavior.
type CandidateKind int

const (
	// CandidateKeyword is a plain keyword or option.
	CandidateKeyword CandidateKind = iota
	// CandidateTable is a table or view.
	CandidateTable
	// CandidateColumn is a column of an owning table.
	CandidateColumn
	// CandidateSchema is a schema name.
	CandidateSchema
	// CandidateCatalog is a catalog or database name.
	CandidateCatalog
	// CandidateSequence is a sequence name.
	CandidateSequence
	// CandidateIndex is an index name.
	CandidateIndex
	// CandidateSelectAll is the synthetic "select all columns" marker.
	CandidateSelectAll
	// CandidateFKLookup is the synthetic "look up value from the
	// referenced table" marker for foreign key columns.
	CandidateFKLookup
	// CandidateParameter is a statement parameter such as a file path.
	CandidateParameter
)

// Candidate is one completion result. The UI renders Text and pastes it
// into the edited statement; synthetic markers (SelectAll, FKLookup) are
// handled specially by the UI.
type Candidate struct {
	Kind CandidateKind
	Text string

	// Table is the owning table for column candidates and the referenced
	// table for FK lookup markers.
	Table *TableRef

	// MultiSelect is set on FK lookup markers offered after IN/ANY/ALL.
	MultiSelect bool
}
