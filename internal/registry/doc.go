// Package registry owns the in-flight draft declarations of one
// compilation scope and the freeze protocol that seals them.
//
// Lifecycle is strictly two-phased:
//
//  1. Ingestion: parser fragments arrive via Register and are merged
//     into drafts keyed by identifier. The registry is the only mutator
//     of draft state, and merging is append-only.
//  2. Freeze: after Seal, each draft is converted exactly once into an
//     immutable ir declaration. The resulting ir.Table is the only live
//     output; the registry is dead afterwards.
//
// Everything is single-threaded and synchronous. Fragment-level errors
// (kind conflicts, malformed metadata, bad argument order) are local to
// one identifier and never abort ingestion of unrelated identifiers.
package registry
