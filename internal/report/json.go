package report

import (
	"encoding/json"
	"io"
)

// JSON renders the full run model as indented JSON.
type JSON struct{}

// Report implements Reporter.
func (JSON) Report(w io.Writer, run *Run) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(run)
}
