// Package detection provides structural analysis over luminance planes:
// gradient edge maps, connected-component contours, and a Hough circle
// transform.
//
// The heuristic mammography scorer uses these primitives to decide whether
// an image contains the rounded, organic structures typical of breast
// tissue, as opposed to the straight lines of documents and screenshots.
// Everything operates on imaging.Plane values and is deterministic.
package detection
