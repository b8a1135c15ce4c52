// Package catalog defines the material types a tailoring order can have and,
// for each of them, the fixed path of production stages the order walks through.
//
// A Catalog is built once at start-up (from Default or from a configuration
// file), validated, and then shared read-only by the reconciler, the transition
// engine and the bucket queries. Key rules enforced on construction:
//   - every material path is non-empty and ends in TerminalStage ("Delivery")
//   - stage names are unique within one path, so a name maps to exactly one index
//   - production stages, when given, are interior stages of the same path
package catalog
