package kernel

import (
	"fmt"

	"tailorshop/internal/pkg/errs"

	"github.com/google/uuid"
)

// ErrUUIDIsNotConstructed is returned when validating the zero UUID, the value
// a UUID field holds before any constructor assigned it.
var ErrUUIDIsNotConstructed = errs.NewValueIsRequiredError("UUID must be created via NewUUID, UUIDFromString, or UUIDFromBytes")

// UUID identifies an order. It wraps github.com/google/uuid so the domain
// never handles raw byte arrays, and it is safe to copy and share between
// goroutines.
//
// The zero value is invalid. Build one with NewUUID for a new order, with
// UUIDFromString for ids arriving over HTTP or the CLI, or with UUIDFromBytes
// for ids read back from the database.
//
// Example:
//
//	id := kernel.NewUUID()
//	o, err := order.NewOrder(id, catalog.Saree, catalog.Default(), time.Now())
type UUID struct {
	id uuid.UUID
}

// NewUUID returns a random (version 4) identifier. It is how the HTTP and CLI
// adapters name an order before the create command runs.
//
// Example:
//
//	id := kernel.NewUUID()
//	cmd, err := commands.NewCreateOrderCommand(id, "blouse")
func NewUUID() UUID {
	return UUID{id: uuid.New()}
}

// UUIDFromString parses any textual form accepted by github.com/google/uuid:
// the canonical hyphenated form, braces, or a "urn:uuid:" prefix. Malformed
// input and the nil UUID are both rejected with errs.ErrValueIsInvalid or
// ErrUUIDIsNotConstructed respectively.
//
// Example:
//
//	id, err := kernel.UUIDFromString(args[0])
//	if err != nil {
//	    return fmt.Errorf("order id %q: %w", args[0], err)
//	}
func UUIDFromString(s string) (UUID, error) {
	id, err := uuid.Parse(s)
	if err != nil {
		return UUID{}, errs.NewValueIsInvalidErrorWithCause("order id", fmt.Errorf("invalid UUID format: %w", err))
	}
	parsed := UUID{id: id}
	if err = parsed.Validate(); err != nil {
		return UUID{}, err
	}
	return parsed, nil
}

// UUIDFromBytes builds a UUID from its 16 raw bytes, as stored by the database.
// Any other length is an error, and so is a slice of sixteen zero bytes.
//
// Example:
//
//	id, err := kernel.UUIDFromBytes(dto.ID[:])
//	if err != nil {
//	    return nil, err
//	}
func UUIDFromBytes(b []byte) (UUID, error) {
	id, err := uuid.FromBytes(b)
	if err != nil {
		return UUID{}, fmt.Errorf("invalid UUID format: %w", err)
	}
	parsed := UUID{id: id}
	if err = parsed.Validate(); err != nil {
		return UUID{}, err
	}
	return parsed, nil
}

// String returns the canonical lowercase hyphenated form, used in logs, event
// payloads and error messages.
func (u UUID) String() string {
	return u.id.String()
}

// Bytes exposes the underlying google uuid for persistence and transport
// adapters. Despite the name it returns a uuid.UUID array, not a slice; take
// [:] when a slice is needed.
//
// Example:
//
//	row := orderrepo.OrderDTO{ID: o.ID().Bytes()}
func (u UUID) Bytes() uuid.UUID {
	return u.id
}

// IsEqual reports whether both values name the same order.
func (u UUID) IsEqual(other UUID) bool {
	return u.id == other.id
}

// Validate rejects the nil UUID with ErrUUIDIsNotConstructed. Every
// aggregate setter that accepts an id calls it first.
func (u UUID) Validate() error {
	if u.id == uuid.Nil {
		return ErrUUIDIsNotConstructed
	}
	return nil
}
