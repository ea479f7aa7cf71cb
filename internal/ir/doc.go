// Package ir provides the frozen object model for widl declarations.
//
// This package is the foundational layer: all other internal packages
// import ir; ir imports nothing internal. It defines the closed kind
// enumeration, the capability traits shared by every declaration kind
// (annotations, generator hints, originating modules, source location),
// the FunctionLike shape for callable declarations, and one immutable
// declaration type per kind.
//
// Key design constraints:
//   - Frozen declarations are value-immutable: every composite field is
//     an independently owned copy, and accessors never leak internal
//     slices or maps.
//   - Kind dispatch is by tag with exhaustive switches, never reflection.
//   - Trait normalization happens at construction; malformed raw metadata
//     never reaches consumers.
package ir
