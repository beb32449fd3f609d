// Package imaging provides image loading and pixel-level primitives for the
// mammography screening pipeline.
//
// It owns the decode boundary: files are validated (format, size bounds)
// and decoded exactly once per session through ImageCache, then handed to
// the scorers as read-only data. The Plane type is the single-channel
// luminance representation every heuristic operates on; helpers cover size
// normalization, region extraction, and color statistics.
//
// Nothing in this package is specific to mammography; the medical semantics
// live in the heuristics and assess packages.
package imaging
