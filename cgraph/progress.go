package cgraph

// Status is a student's standing on one discipline.
type Status int

const (
	StatusUnassociated Status = iota
	StatusPending
	StatusInProgress
	StatusCompleted
)

func (s Status) String() string {
	switch s {
	case StatusCompleted:
		return "completed"
	case StatusInProgress:
		return "in-progress"
	case StatusPending:
		return "pending"
	case StatusUnassociated:
		return "unassociated"
	default:
		return "unknown"
	}
}

// ProgressEntry annotates one discipline with a student's status.
type ProgressEntry struct {
	ID     DisciplineID
	Name   string
	Status Status
}

// ProjectProgress assigns every node exactly one status for display.
// Priority: completed > in-progress > pending > unassociated. Pending
// means the student is associated with the discipline but has neither
// completed nor started it; unassociated means no relationship at all.
// Total over any input sets, entries in ascending id order.
func (g *Graph) ProjectProgress(completed, inProgress, associated IDSet) []ProgressEntry {
	entries := make([]ProgressEntry, 0, len(g.nodes))
	for _, id := range g.SortedNodeIDs() {
		status := StatusUnassociated
		switch {
		case completed.Has(id):
			status = StatusCompleted
		case inProgress.Has(id):
			status = StatusInProgress
		case associated.Has(id):
			status = StatusPending
		}
		entries = append(entries, ProgressEntry{ID: id, Name: g.nodes[id].Name, Status: status})
	}
	return entries
}
