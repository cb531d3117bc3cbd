package dataset

import (
	"io"

	"github.com/idlab-discover/berryroc/internal/logging"
	"github.com/idlab-discover/berryroc/internal/ui"
)

var logger = logging.New("Dataset:", ui.FgCyan)

// SetLogger sets an optional destination for dataset logs.
// When set to nil, dataset logging is disabled.
func SetLogger(w io.Writer) { logger.SetWriter(w) }

func logf(name string, format string, args ...any) {
	logger.Logf(name, format, args...)
}
