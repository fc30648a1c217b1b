// Package mocks provides centralized mock implementations for testing.
//
// Each mock exposes function fields for its interface methods, default return
// values used when no function is set, and call tracking for verification.
// Call tracking is guarded by a mutex so the mocks are safe in parallel tests.
//
// Usage:
//
//	import "github.com/phrazzld/scriptor-api/internal/mocks"
//
//	func TestSomething(t *testing.T) {
//	    provider := mocks.NewMockProviderWithText("generated article")
//
//	    // Use the mock in your test...
//
//	    assert.Equal(t, 1, provider.CallCount())
//	}
package mocks
