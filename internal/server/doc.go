// Package server implements the MCP (Model Context Protocol) server for the
// mammography screening pipeline.
//
// This package provides a JSON-RPC 2.0 server that exposes the screening
// workflow to MCP-compatible clients: image loading and inspection,
// heuristic mammogram validation, external cancer-risk assessment and
// clinical report rendering.
//
// # Protocol
//
// The server communicates over stdio using JSON-RPC 2.0:
//   - Input: JSON-RPC requests on stdin (one per line)
//   - Output: JSON-RPC responses on stdout
//
// Supported MCP methods:
//   - initialize: Protocol handshake
//   - tools/list: Enumerate available tools
//   - tools/call: Execute a tool with arguments
//   - ping: Health check
//
// # Available Tools
//
// Basic Image Information:
//   - image_load: Load image and get metadata
//   - image_dimensions: Get width and height
//
// Region Operations:
//   - image_crop: Extract rectangular region
//   - image_crop_quadrant: Extract named region (top-left, center, etc.)
//
// Screening Pipeline:
//   - mammo_validate: Heuristic mammogram validation with feature scores
//   - mammo_assess: External model cancer-risk assessment; when validation
//     rejects the image, assessment is skipped and the verdict is returned
//     with an explanation unless forced
//   - report_render: Full pipeline producing the clinical report documents,
//     or a re-render from a stored assessment
//
// Annotations:
//   - annotations_extract: OCR burned-in view markers and facility text
//
// # Logging
//
// All diagnostics go to stderr. Stdout is reserved for protocol frames;
// writing anything else there corrupts the stream.
package server
