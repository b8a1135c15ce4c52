// Package order provides the Order aggregate of the tailoring shop: a garment
// job of one material type moving along that material's stage path.
//
// The package includes:
//   - Order: identity, material type, current status and delivery flag
//   - HistoryEntry: one completed stage in the append-only status history
//
// Key business rules:
//   - the status history is append-only and kept in chronological order
//   - IsDelivered is true exactly when the current status is the terminal stage
//   - a restored order may carry a legacy status name that no longer exists in
//     the catalog; resolving it is the job of services.StatusReconciler
//   - Order never decides which stage comes next; services.StatusEngine does,
//     working on a Clone so a rejected transition leaves the original untouched
package order
