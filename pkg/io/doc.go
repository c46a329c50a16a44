// Package io reads and writes board layout files.
//
// # Format
//
// A layout file lists components in order. Only the order and the spans are
// significant: positions are re-derived by the packer on load, so a stored
// row/col is informational.
//
//	{
//	  "columns": 8,
//	  "components": [
//	    {"id": "clock", "rows": 1, "cols": 1},
//	    {"id": "photo", "rows": 2, "cols": 2}
//	  ]
//	}
//
// The same structure is accepted as TOML and YAML:
//
//	columns = 8
//
//	[[components]]
//	id = "clock"
//	rows = 1
//	cols = 1
//
// [Import] picks the decoder from the file extension (.json, .toml, .yaml,
// .yml). [WriteJSON] exports a placed board with its row count and cell
// metrics for external renderers.
package io
