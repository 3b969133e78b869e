package mcp

import (
	"testing"

	"go.uber.org/goleak"
)

// TestMain checks that in-memory sessions opened by the tests are fully
// torn down
func TestMain(m *testing.M) {
	goleak.VerifyTestMain(m)
}
