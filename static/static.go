// Package static holds the embedded dashboard assets.
package static

import _ "embed"

//go:embed index.html
var IndexHTML []byte
