package symtab

import "fmt"

// Reserved labels: the global BSS region, the runtime stack region, and the
// fixed entry point of the program's own statement part. These three never
// come from the fresh-label allocator.
const (
	LabelBSS   = "L.0"
	LabelStack = "L.1"
	LabelEntry = "L.2"
	// ProgramLabel is assigned directly to the PROGRAM entry; it is not
	// produced by Labels.New, which starts allocating at L.4.
	ProgramLabel = "L.3"
)

// Labels is the monotonically increasing fresh-label allocator. Every
// New call returns one unused label; labels are never reused.
type Labels struct {
	next int
}

// NewLabels returns an allocator whose first New call returns "L.4", the
// first label not already reserved by LabelBSS/LabelStack/LabelEntry/
// ProgramLabel.
func NewLabels() *Labels {
	return &Labels{next: 4}
}

// New returns a fresh, globally unique label.
func (l *Labels) New() string {
	lbl := fmt.Sprintf("L.%d", l.next)
	l.next++
	return lbl
}
