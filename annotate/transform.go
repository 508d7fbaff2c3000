// SPDX-License-Identifier: MIT

// Package annotate contains the annotation-application engine: the widget
// selection predicate, the transform that inserts a vertical annotation into
// a dashboard document, and the orchestrator that runs it against the
// backend.
package annotate

import "fmt"

// Apply inserts ann into every metric widget of doc accepted by sel and
// reports how many widgets were annotated. Widgets are visited in document
// order. Missing containers along properties.annotations.vertical are
// created empty; wrong-typed ones make the document malformed. A document
// without a widgets array is left untouched with a zero count.
//
// Each matching widget receives its own copy of the annotation. Calling
// Apply again appends one more entry per widget; it never rewrites or
// deduplicates existing annotations.
func Apply(doc map[string]any, ann Annotation, sel WidgetSelector) (int, error) {
	widgets, ok := doc["widgets"].([]any)
	if !ok {
		return 0, nil
	}

	annotated := 0
	for i, w := range widgets {
		widget, ok := w.(map[string]any)
		if !ok {
			continue
		}
		typ, _ := widget["type"].(string)
		if typ != "metric" {
			continue
		}
		if !sel.Matches(widget) {
			continue
		}

		props, err := objectEntry(widget, "properties")
		if err != nil {
			return annotated, fmt.Errorf("widget %d: %w", i, err)
		}
		annotations, err := objectEntry(props, "annotations")
		if err != nil {
			return annotated, fmt.Errorf("widget %d: %w", i, err)
		}
		entry := map[string]any{"label": ann.Label, "value": ann.Value}
		if err := appendEntry(annotations, "vertical", entry); err != nil {
			return annotated, fmt.Errorf("widget %d: %w", i, err)
		}
		annotated++
	}
	return annotated, nil
}
