package order

import (
	"errors"
	"slices"
	"strings"
	"time"

	"tailorshop/internal/core/domain/model/catalog"
	"tailorshop/internal/core/domain/model/kernel"
	"tailorshop/internal/pkg/errs"
)

// ReceivedNotes is the note on the first history entry of every new order.
const ReceivedNotes = "Order received"

var (
	// ErrOrderIsNotConstructed is returned for an Order that did not come from
	// NewOrder or RestoreOrder.
	ErrOrderIsNotConstructed = errors.New("Order must be created via NewOrder or RestoreOrder constructor")
)

// Order is the aggregate root of a tailoring job.
//
// Invariants:
//   - valid identifier and a non-empty material name; the material type is
//     valid unless the order was restored with a name outside the closed set
//   - non-empty current status
//   - history entries are only ever appended
//   - version counts committed writes and drives optimistic concurrency in
//     the repository; the domain never changes it
type Order struct {
	id            kernel.UUID
	materialType  catalog.MaterialType
	materialName  string
	currentStatus string
	history       []HistoryEntry
	isDelivered   bool
	version       int
	isConstructed bool
}

// NewOrder registers an order at the first stage of its material's path and
// records that stage as the first history entry.
//
// Example:
//
//	o, err := order.NewOrder(kernel.NewUUID(), catalog.Blouse, catalog.Default(), time.Now())
//	if err != nil {
//	    return err
//	}
//	fmt.Println(o.CurrentStatus()) // "Initial Checking"
func NewOrder(id kernel.UUID, materialType catalog.MaterialType, stages *catalog.Catalog, receivedAt time.Time) (*Order, error) {
	if stages == nil {
		return nil, errs.NewValueIsRequiredError("catalog")
	}

	o := &Order{isConstructed: true}
	if err := errors.Join(
		o.setID(id),
		o.setMaterialType(materialType),
	); err != nil {
		return nil, err
	}

	first, err := stages.StageAt(materialType, 0)
	if err != nil {
		return nil, err
	}

	entry, err := NewHistoryEntry(first, receivedAt, ReceivedNotes)
	if err != nil {
		return nil, err
	}

	o.currentStatus = first
	o.history = []HistoryEntry{entry}
	o.isDelivered = first == catalog.TerminalStage
	return o, nil
}

// RestoreOrder rebuilds an order from persisted state. currentStatus is kept
// verbatim even when it is a legacy name.
func RestoreOrder(
	id kernel.UUID,
	materialType catalog.MaterialType,
	currentStatus string,
	history []HistoryEntry,
	isDelivered bool,
	version int,
) (*Order, error) {
	o := newRestoredOrder(history, isDelivered)
	if err := errors.Join(
		o.setID(id),
		o.setMaterialType(materialType),
		o.setCurrentStatus(currentStatus),
		o.setVersion(version),
	); err != nil {
		return nil, err
	}

	return o, nil
}

// RestoreOrderByMaterialName rebuilds an order whose material type is stored
// by name. A name outside the closed set is not an error: the order comes back
// with catalog.UnknownMaterial and the raw name, so read paths can flag it.
// Such an order has no path and cannot advance.
//
// Example:
//
//	o, err := order.RestoreOrderByMaterialName(id, "lehenga", "Final Checking", history, false, 3)
//	// err == nil, o.MaterialType() == catalog.UnknownMaterial, o.MaterialName() == "lehenga"
func RestoreOrderByMaterialName(
	id kernel.UUID,
	materialName string,
	currentStatus string,
	history []HistoryEntry,
	isDelivered bool,
	version int,
) (*Order, error) {
	o := newRestoredOrder(history, isDelivered)
	if err := errors.Join(
		o.setID(id),
		o.setMaterialName(materialName),
		o.setCurrentStatus(currentStatus),
		o.setVersion(version),
	); err != nil {
		return nil, err
	}

	return o, nil
}

func newRestoredOrder(history []HistoryEntry, isDelivered bool) *Order {
	return &Order{
		history:       slices.Clone(history),
		isDelivered:   isDelivered,
		isConstructed: true,
	}
}

// Validate ensures the Order was built through a constructor.
func (o *Order) Validate() error {
	if o == nil || !o.isConstructed {
		return ErrOrderIsNotConstructed
	}
	return nil
}

func (o *Order) IsEqual(other *Order) bool {
	return other != nil && o.id.IsEqual(other.id)
}

func (o *Order) ID() kernel.UUID {
	return o.id
}

func (o *Order) MaterialType() catalog.MaterialType {
	return o.materialType
}

// MaterialName is the wire name of the material type, or the stored name when
// the type is not recognized.
func (o *Order) MaterialName() string {
	return o.materialName
}

// CurrentStatus is the raw stage name as stored, possibly a legacy one.
func (o *Order) CurrentStatus() string {
	return o.currentStatus
}

// History returns a copy of the status history, oldest first.
func (o *Order) History() []HistoryEntry {
	return slices.Clone(o.history)
}

func (o *Order) IsDelivered() bool {
	return o.isDelivered
}

func (o *Order) Version() int {
	return o.version
}

// Clone returns an independent copy that can be changed without affecting o.
func (o *Order) Clone() *Order {
	c := *o
	c.history = slices.Clone(o.history)
	return &c
}

// RecordStage appends a history entry for stage, makes it the current status
// and sets the delivered flag. delivered must be true exactly when stage is the
// terminal stage of the order's path; the caller owns that decision.
func (o *Order) RecordStage(stage string, completedAt time.Time, notes string, delivered bool) error {
	entry, err := NewHistoryEntry(stage, completedAt, notes)
	if err != nil {
		return err
	}

	o.history = append(o.history, entry)
	o.currentStatus = entry.Stage()
	o.isDelivered = delivered
	return nil
}

// Rename replaces a legacy current status with its canonical name without
// touching the history. Used by the legacy migration only.
func (o *Order) Rename(canonical string, delivered bool) error {
	if err := o.setCurrentStatus(canonical); err != nil {
		return err
	}
	o.isDelivered = delivered
	return nil
}

func (o *Order) setID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return err
	}
	o.id = id
	return nil
}

func (o *Order) setMaterialType(m catalog.MaterialType) error {
	if err := m.Validate(); err != nil {
		return err
	}
	o.materialType = m
	o.materialName = m.String()
	return nil
}

func (o *Order) setMaterialName(name string) error {
	name = strings.TrimSpace(name)
	if name == "" {
		return errs.NewValueIsRequiredError("material type")
	}

	m, err := catalog.ParseMaterialType(name)
	if err != nil && !errors.Is(err, catalog.ErrUnknownMaterialType) {
		return err
	}
	if m == catalog.UnknownMaterial {
		o.materialType = catalog.UnknownMaterial
		o.materialName = name
		return nil
	}
	return o.setMaterialType(m)
}

func (o *Order) setCurrentStatus(status string) error {
	status = strings.TrimSpace(status)
	if status == "" {
		return errs.NewValueIsRequiredError("current status")
	}
	o.currentStatus = status
	return nil
}

func (o *Order) setVersion(version int) error {
	if version < 0 {
		return errs.NewValueIsOutOfRangeError("version", version, 0, "unbounded")
	}
	o.version = version
	return nil
}
