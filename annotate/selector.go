// SPDX-License-Identifier: MIT

package annotate

import "strings"

// WidgetSelector decides which widgets receive an annotation.
type WidgetSelector struct {
	// TitleContains keeps only widgets whose properties.title contains this
	// substring, case-sensitive. Empty means no title filtering.
	TitleContains string
}

// Matches reports whether the widget is an annotation target. A missing or
// non-string title counts as empty, so a configured filter rejects it.
func (s WidgetSelector) Matches(widget map[string]any) bool {
	if s.TitleContains == "" {
		return true
	}
	title := ""
	if props, ok := widget["properties"].(map[string]any); ok {
		if t, ok := props["title"].(string); ok {
			title = t
		}
	}
	return strings.Contains(title, s.TitleContains)
}
