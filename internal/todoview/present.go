package todoview

import (
	"fmt"
	"time"

	"github.com/runoshun/brutal/internal/domain"
)

// Stats are the counts shown in the header.
type Stats struct {
	Total     int
	Completed int
	Remaining int
}

// ComputeStats counts todos by completion.
func ComputeStats(todos []domain.Todo) Stats {
	st := Stats{Total: len(todos)}
	for _, t := range todos {
		if t.Completed {
			st.Completed++
		}
	}
	st.Remaining = st.Total - st.Completed
	return st
}

// FormatDate renders a creation time as "Jan 2".
func FormatDate(t time.Time) string {
	if t.IsZero() {
		return ""
	}
	return t.Format("Jan 2")
}

// FormatID renders an ID zero-padded to three digits, e.g. "#004".
func FormatID(id int) string {
	return fmt.Sprintf("#%03d", id)
}
