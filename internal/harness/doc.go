// Package harness provides a conformance testing framework for the
// compilation pipeline.
//
// Scenarios are YAML documents that name a set of CUE schema files,
// run them through the full compile, register, and freeze pipeline,
// and assert on the resulting frozen declaration table: which
// identifiers were declared, which fragments were rejected and why,
// and what metadata survived merging.
//
// Golden files capture the canonical JSON rendering of the frozen
// table, so any change to merge order, trait propagation, or digest
// input shows up as a golden diff.
package harness
