package decomposer

import (
	"github.com/npillmayer/schuko/tracing"
)

// tracer writes to trace with key 'decomposer'
func tracer() tracing.Trace {
	return tracing.Select("decomposer")
}
