/*
Package render prints trees of nodes as outlines to a terminal.

	root
	├── a
	│   └── b
	└── c

Labels are measured in terminal cells, respecting East Asian wide characters,
and truncated to fit a configured width. Depths may be colored.

License

Governed by a 3-Clause BSD license. License file may be found in the root
folder of this module.

Copyright (c) Norbert Pillmayer <norbert@pillmayer.com>

Please refer to the License file for details.
*/
package render

import (
	"github.com/npillmayer/schuko/gtrace"
	"github.com/npillmayer/schuko/tracing"
)

// T traces to a global core-tracer.
func T() tracing.Trace {
	return gtrace.CoreTracer
}
