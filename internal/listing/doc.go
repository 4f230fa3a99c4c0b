// Package listing implements the filter -> sort -> paginate pipeline that
// backs the shop and clinics listing pages.
//
// Everything here is a pure, synchronous transformation over an in-memory
// snapshot. Source slices are never mutated; every stage returns a new
// slice. The pipeline is total: empty or nil input yields an empty view
// and never an error.
package listing
