// Package main provides the entry point for the reportgen CLI.
//
// reportgen assembles campaign performance reports from heterogeneous
// input files (spreadsheets, CSV exports, JSON dumps) and renders them
// as Markdown, HTML, JSON, or PDF.
//
// Usage:
//
//	reportgen generate --category final performance.xlsx placements.csv
//	reportgen widgets
//	reportgen history
//
// See --help for all available options.
package main

// main is the entry point for reportgen.
func main() {
	Execute()
}
