// Package units provides physical quantities for neural recording data.
//
// A Quantity couples a numeric payload (scalar or vector) with a unit
// string such as "ms" or "mV". Quantities can be rescaled between
// compatible units, and reciprocal-frequency units can be simplified to
// their time-based equivalents ("1/Hz" becomes "s"), which keeps time
// axes in a single canonical unit when they are written out.
//
// The unit table is intentionally small: it covers the units that appear
// in electrophysiology recordings (time, voltage, current, frequency,
// length and dimensionless counts). Unknown units are rejected with
// ErrUnknownUnit rather than silently passed through.
package units
