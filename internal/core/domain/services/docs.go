// Package services holds the stateless domain services of the tailoring order
// service. They read the stage catalog and orders and return new values; none
// of them persists anything.
//
// The package includes:
//   - StatusReconciler: turns a raw, possibly legacy, status into a catalog index
//   - StatusEngine: computes and applies the next stage of an order
//   - BucketQueries: delivered / ready-for-delivery views and progress percentage
package services
