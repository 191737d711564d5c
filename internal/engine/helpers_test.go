package engine

import (
	"log/slog"
	"testing"

	"github.com/jackzampolin/stencil/internal/testutil"
)

func testLogger(t *testing.T) *slog.Logger { return testutil.SilentLogger(t) }
