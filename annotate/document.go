// SPDX-License-Identifier: MIT

package annotate

import (
	"fmt"

	"github.com/cvxtct/cwnote/noteerr"
)

// objectEntry returns obj[key] as an object, inserting an empty one when the
// key is absent. A present non-object value means the document has a shape
// this tool does not support.
func objectEntry(obj map[string]any, key string) (map[string]any, error) {
	v, ok := obj[key]
	if !ok {
		child := map[string]any{}
		obj[key] = child
		return child, nil
	}
	child, ok := v.(map[string]any)
	if !ok {
		return nil, noteerr.New(noteerr.CodeMalformedDocument, fmt.Sprintf("widget field %q is not an object", key), nil)
	}
	return child, nil
}

// appendEntry appends elem to the array at obj[key], creating the array when
// the key is absent.
func appendEntry(obj map[string]any, key string, elem any) error {
	v, ok := obj[key]
	if !ok {
		obj[key] = []any{elem}
		return nil
	}
	arr, ok := v.([]any)
	if !ok {
		return noteerr.New(noteerr.CodeMalformedDocument, fmt.Sprintf("widget field %q is not an array", key), nil)
	}
	obj[key] = append(arr, elem)
	return nil
}
