package store

import (
	"fmt"
	"io"
	"strings"

	"github.com/idlab-discover/berryroc/internal/berry"
	"github.com/idlab-discover/berryroc/internal/logging"
	"github.com/idlab-discover/berryroc/internal/ui"
)

var logger = logging.New("Store:", ui.FgMagenta)

// SetLogger sets an optional destination for store debug logs.
// When set to nil, store logging is disabled.
func SetLogger(w io.Writer) { logger.SetWriter(w) }

func logf(name string, format string, args ...any) {
	logger.Logf(name, format, args...)
}

func describePatch(p berry.Patch) string {
	if !logger.Enabled() {
		return ""
	}
	var parts []string
	if p.Items != nil {
		parts = append(parts, fmt.Sprintf("items=%d", len(*p.Items)))
	}
	if p.Threshold != nil {
		parts = append(parts, fmt.Sprintf("threshold=%.2f", *p.Threshold))
	}
	if p.Selection != nil {
		parts = append(parts, fmt.Sprintf("selection=%d", len(*p.Selection)))
	}
	if p.Interacting != nil {
		parts = append(parts, fmt.Sprintf("interacting=%t", *p.Interacting))
	}
	if len(parts) == 0 {
		return "{}"
	}
	return "{" + strings.Join(parts, " ") + "}"
}
