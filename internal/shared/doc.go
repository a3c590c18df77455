// Package shared provides common utilities and test helpers used across
// the codebase. It should only hold code with no domain-specific logic:
// test utilities consumed by multiple packages live under testutil.
package shared
