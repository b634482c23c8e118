// Package response defines the result envelope shared by every renderer.
//
// A handler produces a Result: either Ok(v) carrying an arbitrary JSON value,
// or Fail(ErrorResponse) carrying one or more JSON:API style error objects
// (https://jsonapi.org/format/#error-objects). Renderers in the render
// subpackages turn a Result into a framework response.
//
// Wire shape of a failure:
//
//	{"errors":[{"detail":"not found","status":"404"}]}
//
// Optional error-object members are omitted when unset; status is always
// present and always a string.
package response
