// Package features engineers the model inputs from a transformed close
// series.
//
// Build extends the series with a forecast-horizon block of future rows
// (contiguous dates, unknown close), computes one lag of the close at the
// forecast horizon, and derives centered rolling means of that lag for a
// set of window sizes. Windows shrink at both boundaries instead of
// dropping rows, and windows for historical rows never consume the
// reserved future block.
//
// Undefined values (the close of future rows, the lag of the first K
// historical rows, rolling means with no defined inputs) are marked
// missing with NaN; rows are always retained. IsMissing reports the
// marker.
//
// Verify is a defensive gate: it recomputes every historical rolling value
// from historical rows only and fails with *LeakageError on any mismatch,
// catching features that consumed data they should not see.
package features
