// Package align reconciles a lyrics word sequence with a time-stamped
// transcript word sequence.
//
// Match computes an order-preserving, injective partial correspondence
// between the two normalized token sequences using recursive
// longest-common-run matching. Interpolate then assigns a timing to every
// lyrics word, estimating times for words the transcript never produced.
package align
