// Package schemas holds the JSON Schemas that scoring service responses are checked against.
package schemas

import "embed"

// FS contains every *.schema.json file in this directory.
//
//go:embed *.schema.json
var FS embed.FS
