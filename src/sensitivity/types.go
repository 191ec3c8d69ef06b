package sensitivity

// Column names required in any loaded sensitivity table.
const (
	ColCategory    = "Category"
	ColCorrelation = "Pre-Model Correlation"
	ColImportance  = "Post-Model Importance (RF)"
)

// CategoryRecord is one row of the sensitivity table. Identity is the
// category name; records are immutable once loaded.
type CategoryRecord struct {
	Category            string
	PreModelCorrelation float64
	// PostModelImportance is the random-forest importance coefficient (>= 0).
	PostModelImportance float64
}

// Table is a loaded sensitivity dataset plus a human-readable
// description of where it came from.
type Table struct {
	Records []CategoryRecord
	Source  string
}

// Categories returns the category names in table order.
func (t *Table) Categories() []string {
	out := make([]string, 0, len(t.Records))
	for _, r := range t.Records {
		out = append(out, r.Category)
	}
	return out
}

// MaxImportance returns the largest PostModelImportance in the table,
// or 0 for an empty table.
func (t *Table) MaxImportance() float64 {
	max := 0.0
	for _, r := range t.Records {
		if r.PostModelImportance > max {
			max = r.PostModelImportance
		}
	}
	return max
}
