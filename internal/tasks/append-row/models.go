// internal/tasks/append-row/models.go
package appendrow

import "time"

const (
	// StatusPending marks a freshly queued row for the downstream consumer.
	StatusPending = "pending"
)

// Input is the validated prompt plus run metadata destined for one row.
type Input struct {
	Prompt string `json:"prompt"`
	RunID  string `json:"runId"`
}

// Output reports the observable effect of a successful append.
type Output struct {
	RowsAppended int64  `json:"rowsAppended"`
	UpdatedRange string `json:"updatedRange"`
}

// Row builds the queue row: prompt, timestamp, status flag, run id.
// Rows are append-only; nothing here is ever read back or updated.
func (in *Input) Row(now time.Time) []interface{} {
	return []interface{}{
		in.Prompt,
		now.UTC().Format(time.RFC3339),
		StatusPending,
		in.RunID,
	}
}
