package auth

import (
	"testing"

	"genovault/internal/logger"
)

// testLogger returns a stdout-only logger at error level to keep test
// output quiet.
func testLogger(t *testing.T) *logger.Logger {
	t.Helper()
	return logger.NewLogger(logger.LevelError)
}
