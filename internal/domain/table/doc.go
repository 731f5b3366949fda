// Package table is a headless table model: it keeps the ordering, filtering,
// sorting and hover state behind a table, list, stack or grid view and turns a
// bound collection into a sequence of row projections. It performs no I/O, no
// logging and no rendering; presentation layers map each RowProjection onto a
// visual row.
package table
