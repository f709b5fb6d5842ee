// Package apperr provides the error taxonomy shared across the service.
//
// Errors are classified by Kind so that the HTTP layer can translate them
// into status codes without string matching:
//
//   - KindNotFound    -> 404
//   - KindUpstream    -> 502
//   - KindParse       -> 503
//   - KindUnavailable -> 503
//
// Errors wrap their cause, so errors.Is/errors.As keep working through the
// classification layer.
package apperr
