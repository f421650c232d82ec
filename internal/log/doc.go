// Package log provides logging helpers built on top of the standard
// slog package.
//
// Report generation routinely logs data-shaped attributes: row records,
// metadata maps, rendered fragments. A single malformed CSV cell or a
// wide spreadsheet row can put kilobytes into one attribute, so the
// TruncatingHandler caps attribute value length before records reach
// the underlying handler. Attribute keys, levels, and messages pass
// through untouched.
//
// # Usage
//
//	logger := log.NewLogger(os.Stderr, true) // verbose=true
//	logger.Debug("adapted row", "record", record)
//	slog.SetDefault(logger)
package log
