// Package adapter provides per-format source adapters that turn one
// campaign-performance file into a canonical dataset fragment.
//
// Adapters are stateless: each Adapt call is a pure function of the file
// at the given path. The Registry maps a closed set of recognized file
// extensions to adapter implementations behind one shared interface, so
// the normalizer can look up the right reader without knowing formats.
//
// Design decision: We use an explicit lookup table over a finite extension
// set rather than content sniffing. Campaign exports are named by the tools
// that produce them, the extension is reliable in practice, and a typed
// ErrUnsupportedFormat keeps the failure mode explicit for the batch layer.
package adapter
