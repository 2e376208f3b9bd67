// Package translator holds the dispatch table that maps a (source, target)
// format pair to the functions converting requests between them.
//
// The registry is an explicit value built once at startup and handed to the
// engine; nothing registers itself from init. Translators report non-fatal
// conditions (oversized prompts) through a Sink instead of logging directly,
// so callers decide how warnings surface.
package translator
