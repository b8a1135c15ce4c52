// Package errs provides the typed errors shared by every layer of the tailoring
// order service.
//
// Each error kind follows the same shape:
//   - a sentinel (ErrValueIsInvalid, ErrObjectNotFound, ...) usable with errors.Is
//   - a struct carrying the offending parameter and an optional cause
//   - New...Error and New...ErrorWithCause constructors
//   - Unwrap returning the sentinel
//
// Domain packages wrap these sentinels in their own, more specific sentinels
// (for example catalog.ErrUnknownMaterialType wraps ErrValueIsInvalid), so
// adapters can map whole families of failures to a response code without
// knowing every domain error.
package errs
