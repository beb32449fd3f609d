// Package ocr extracts burned-in text annotations from mammography images.
//
// Screening images commonly carry laterality and projection markers ("RCC",
// "L MLO") plus facility text in the corners. This package wraps Tesseract
// (via gosseract/v2) to read that text and parses the standard view markers
// out of it.
//
// Tesseract requires cgo and a system installation, so the real backend is
// built only on Linux with CGO enabled; other builds get stubs that return
// ErrUnavailable. ParseViewLabels is pure Go and works everywhere.
package ocr
