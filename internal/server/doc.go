// Package server implements the MCP (Model Context Protocol) server exposing
// Recraft image generation and editing as tools.
//
// This package provides a JSON-RPC 2.0 server over stdio that validates tool
// arguments, forwards them to the Recraft HTTP API, and reshapes responses
// into MCP content (text segments or inline images).
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
// Generation:
//   - generate_image: Text-to-image, with optional save to disk
//
// Transformation:
//   - image_to_image: Prompt-guided transformation of an input image
//   - inpaint_image: Regenerate a masked region
//   - replace_background: New background behind the existing subject
//
// Single-file operations:
//   - vectorize_image: Raster to SVG
//   - remove_background: Subject on transparency
//   - crisp_upscale: Resolution enhancement
//   - creative_upscale: Resolution enhancement with regenerated detail
//
// Styles and account:
//   - create_style: Derive a reusable style from reference images
//   - get_user_info: Account name, email and credits
//
// Disk save:
//   - save_image_to_disk: Persist an image from a URL or base64 payload
//
// # Validation
//
// Every tool's arguments are validated by internal/schema before any upstream
// call. All violations in a request are collected and reported together; the
// same schema objects render the inputSchema advertised on tools/list.
//
// # Error Handling
//
// Validation failures return JSON-RPC code -32602 with the aggregated
// message. Upstream API rejections, empty responses and disk I/O failures
// return code -32000 with the underlying error text preserved.
package server
