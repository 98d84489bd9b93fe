// Package extract turns the free-form text of one agent response into an
// analysis.Result. A fenced ```json block, when present and well formed,
// supplies fields directly; anything the block does not supply is recovered
// by per-field cue scanning over the raw text. The pipeline is pure and
// total: it never fails, never reads a clock, and degrades to defaults at
// worst.
package extract

import (
	"time"

	"github.com/loglens/loglens/internal/analysis"
)

// Run extracts a Result from one complete agent response. now is stamped
// onto fallback-extracted error entries; the pipeline itself never reads a
// clock.
func Run(raw string, now time.Time) *analysis.Result {
	var dec *decodedResult

	if block, ok := locateBlock(raw); ok {
		if d, err := decodeBlock(block); err == nil {
			dec = d
		}
	}

	return assemble(raw, dec, now)
}
