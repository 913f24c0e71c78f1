// Package taxonomy indexes the curriculum standards hierarchy.
//
// # Structures
//
// Two structures share one id namespace and are kept apart:
//   - the parent/children forest (grade -> domain -> cluster -> standard ->
//     sub-standard), stored as an arena of nodes addressed by index;
//   - the relation graph ("progress to", "progress from", "related"), stored
//     as a separate adjacency map keyed by id and relation kind.
//
// # Integrity
//
// New validates the records once and refuses to build an inconsistent index:
// duplicate ids, dangling parent or child references, and duplicate
// Standard-level descriptions are all KindIntegrity errors. Lookups of unknown
// ids fail with KindNotFound.
//
// # Normalization
//
// Inherit lifts annotations to the Standard level: clusters and domains expand
// to every descendant, sub-standards promote to their parent standard.
package taxonomy
