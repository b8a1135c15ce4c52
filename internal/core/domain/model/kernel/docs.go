// Package kernel holds the value objects shared across the tailoring order
// domain. Aggregates and adapters depend on it; it depends on nothing in the
// domain itself.
//
// The package provides:
//   - UUID: the identifier of an order, validated on construction and
//     compared by value
//
// Values from this package are immutable once built. The zero value of each
// type is invalid: a field that was never assigned fails Validate.
//
// Typical use inside an aggregate constructor:
//
//	func (o *Order) setID(id kernel.UUID) error {
//	    if err := id.Validate(); err != nil {
//	        return err
//	    }
//	    o.id = id
//	    return nil
//	}
package kernel
