// Package polar holds aerodynamic polar data produced by a Reynolds sweep.
//
// A [Dataset] has exactly one [Entry] per requested Reynolds number, in the
// order they were requested. Each entry carries an explicit [Status]:
//
//   - converged: the solver returned a curve (possibly with fewer samples
//     than requested; see [Entry.WellConverged])
//   - failed: the solver errored; Reason holds the message
//   - not_run: the sweep was cancelled before this entry was attempted
//
// Curves within one entry are parallel slices of equal length, but lengths
// differ between entries because the solver drops non-converged angles.
// Nothing is filtered automatically: callers pick a policy with
// [Dataset.Filter] or [Dataset.WellConverged].
package polar
