package harness

// DeclaredEvent records one frozen declaration in a scenario result,
// in freeze order.
type DeclaredEvent struct {
	Identifier string   `json:"identifier"`
	Kind       string   `json:"kind"`
	Digest     string   `json:"digest"`
	Modules    []string `json:"modules,omitempty"`
}

// SkipEvent records a fragment or draft that was rejected, with the
// reason it did not reach the frozen table.
type SkipEvent struct {
	Identifier string `json:"identifier"`
	Reason     string `json:"reason"`
}

// Result holds the outcome of running a scenario.
type Result struct {
	// Declarations lists frozen declarations in freeze order.
	Declarations []DeclaredEvent

	// Described holds the full rendering of each frozen declaration,
	// keyed by identifier. Used for golden comparison and metadata
	// assertions.
	Described map[string]map[string]any

	// Skipped lists rejected fragments and poisoned drafts.
	Skipped []SkipEvent

	// Errors collects assertion failures. Empty means the scenario
	// passed.
	Errors []string
}

// NewResult creates an empty result.
func NewResult() *Result {
	return &Result{Described: make(map[string]map[string]any)}
}

// AddError records an assertion failure.
func (r *Result) AddError(msg string) {
	r.Errors = append(r.Errors, msg)
}

// Passed reports whether all assertions held.
func (r *Result) Passed() bool {
	return len(r.Errors) == 0
}
