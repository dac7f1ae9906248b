// Package catalog is the read-only typed view over a single-cell reference:
// cell identifiers, cell-type labels, optional region labels and per-cell
// integer expression vectors over a fixed gene list.
//
// Cell types and regions are interned to small dense indices in
// first-encountered order, which is also the tie-break order used by every
// downstream policy. Per-type and per-region memberships are held as roaring
// bitmaps of cell indices so that region-scoped candidate pools are a single
// bitmap intersection.
//
// A Catalog is immutable after construction and safe for concurrent readers.
package catalog
