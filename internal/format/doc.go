// Package format renders an aligned timing sequence into one of the
// supported export shapes: a flat entry list, a deduplicated word-to-time
// map, or the per-line reactive structure with relative word deltas and
// embedded subtitle text.
package format
