// Package dataprocessing implements the sales dashboard's data pipeline:
// loading an uploaded spreadsheet or CSV into a raw table, resolving the
// semantic role of each column from its name, deriving calendar features,
// and aggregating the enriched rows into chart-ready views.
//
// The pipeline runs once per upload (load, resolve, enrich) and the
// aggregation step re-runs on every filter change. All stages are total over
// individual cell values: a bad date or time degrades to a null or default
// on that row, never to a dropped row or an error.
package dataprocessing
