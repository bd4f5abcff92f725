package grouping

import (
	"time"

	"github.com/linnemanlabs/pairgroups/internal/homgroups"
)

// Request is one grouping job: the items in display order plus either the
// list of differing pairs or a full difference matrix.
type Request struct {
	Items       []string
	Differences [][2]string
	Matrix      [][]bool
}

// relation builds the difference relation the request describes.
func (r *Request) relation() (homgroups.Relation[string], error) {
	if r.Matrix != nil && len(r.Differences) > 0 {
		return nil, &homgroups.InvalidInputError{Reason: "differences and matrix are mutually exclusive"}
	}
	if r.Matrix != nil {
		return homgroups.NewMatrixRelation(r.Items, r.Matrix), nil
	}
	return homgroups.NewPairRelation(r.Differences), nil
}

// Result is the outcome of a grouping job.
type Result struct {
	ID    string   `json:"id"`
	Items []string `json:"items"`

	// Groups lists the members of each group in label order.
	Groups [][]string `json:"groups"`

	// Labels[i] holds the 1-based labels of Items[i].
	Labels [][]int `json:"labels"`

	MaximalCliques  int       `json:"maximal_cliques"`
	CreatedAt       time.Time `json:"created_at"`
	DurationSeconds float64   `json:"duration_seconds"`
}

// BatchEntry pairs a batch request with its result or error, by position.
type BatchEntry struct {
	Result *Result
	Err    error
}

// Outcome classifies a computation for metrics and logs.
type Outcome string

const (
	OutcomeOK           Outcome = "ok"
	OutcomeInvalid      Outcome = "invalid_input"
	OutcomeInconsistent Outcome = "inconsistent_relation"
	OutcomeTooLarge     Outcome = "too_many_items"
	OutcomeCanceled     Outcome = "canceled"

	OutcomeBatchTooLarge Outcome = "batch_too_large"
)
