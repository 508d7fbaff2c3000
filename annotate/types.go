// SPDX-License-Identifier: MIT

package annotate

// Annotation is the vertical marker appended to each matching widget. Label
// carries the human-readable event ("version: 1.2.3"), Value the instant it
// marks.
type Annotation struct {
	Label string `json:"label"`
	Value string `json:"value"`
}

// NewAnnotation builds the annotation for one dashboard. The timestamp is
// used verbatim; the engine does not validate its format.
func NewAnnotation(label, value, timestamp string) Annotation {
	return Annotation{
		Label: label + ": " + value,
		Value: timestamp,
	}
}

// Selection names the dashboards a run operates on. Exactly one field must
// be set.
type Selection struct {
	Dashboard string
	Prefix    string
	Suffix    string
}

// Request describes one annotation run.
type Request struct {
	Selection Selection
	Label     string
	Value     string
	// Time is an optional literal timestamp. When empty, each dashboard is
	// stamped with the current UTC time at the moment it is processed.
	Time     string
	DryRun   bool
	Selector WidgetSelector
}

// Outcome reports the primary result for a single dashboard. The advisory
// export result is carried separately and never fails the run.
type Outcome struct {
	Dashboard  string
	Matched    int
	DryRun     bool
	Written    bool
	Annotation Annotation
	ExportPath string
	ExportErr  error
}
