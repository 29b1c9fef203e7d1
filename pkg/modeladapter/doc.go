// Package modeladapter provides the HTTP plumbing shared by model API clients.
//
// It contains:
//   - the embeddable [ModelAdapter] base struct with request helpers and auth
//   - typed transport errors ([RateLimitError], [StatusError])
//   - [github.com/germanamz/quill/pkg/modeladapter/usage]: thread-safe token usage tracker
//
// This package contains no provider-specific code. Concrete clients live in
// separate packages that import modeladapter.
package modeladapter
