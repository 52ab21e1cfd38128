// Package transform implements the shapekey list operations: splitting a key
// by vertex-group masks, diffing against an expected name list, creating
// missing keys, and the two disposable-suffix cleanup sweeps.
//
// All operations follow an explicit position-drift policy: names and
// positions are captured before any mutation, and every position is
// re-resolved through the collection immediately before it is used. Bulk
// operations never touch the base entry (position 0).
package transform
