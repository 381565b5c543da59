// Package httputil provides HTTP response helpers for the BigValue server.
//
// # Overview
//
//   - [WriteError]: maps coded errors from pkg/errors to HTTP status codes
//   - [WriteJSON]: encodes a JSON body with the right content type
//   - [WriteArtifact]: serves rendered bytes with an ETag and answers
//     conditional requests with 304 Not Modified
//
// # Status codes
//
// Client errors (see [errors.IsClientError]) map to 400, FILE_NOT_FOUND maps
// to 404 and everything else to 500. Error bodies have the shape
//
//	{"error": "invalid format: \"gif\" ...", "code": "INVALID_FORMAT"}
//
// The message is [errors.UserMessage], so codes never leak into it twice.
package httputil
