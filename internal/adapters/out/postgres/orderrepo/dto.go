// Package orderrepo persists order aggregates with GORM. An order is stored
// as one row in "orders" plus one row per history entry in
// "order_status_history".
package orderrepo

import (
	"time"

	"tailorshop/internal/core/domain/model/kernel"
	"tailorshop/internal/core/domain/model/order"

	"github.com/google/uuid"
)

// OrderDTO is the "orders" row. Status is kept as text because stored rows may
// carry stage names that are no longer part of any path.
type OrderDTO struct {
	ID            uuid.UUID          `gorm:"type:uuid;primaryKey"`
	MaterialType  string             `gorm:"type:varchar(32);not null;index"`
	CurrentStatus string             `gorm:"type:varchar(64);not null"`
	IsDelivered   bool               `gorm:"not null;default:false;index"`
	Version       int                `gorm:"not null;default:0"`
	CreatedAt     time.Time          `gorm:"autoCreateTime;index"`
	History       []StatusHistoryDTO `gorm:"foreignKey:OrderID;constraint:OnDelete:CASCADE"`
}

func (OrderDTO) TableName() string {
	return "orders"
}

// StatusHistoryDTO is one history entry. Position keeps entries in the order
// they were appended.
type StatusHistoryDTO struct {
	OrderID     uuid.UUID `gorm:"type:uuid;primaryKey"`
	Position    int       `gorm:"primaryKey"`
	Stage       string    `gorm:"type:varchar(64);not null"`
	CompletedAt time.Time `gorm:"not null"`
	Notes       string    `gorm:"type:text"`
}

func (StatusHistoryDTO) TableName() string {
	return "order_status_history"
}

func fromDomain(aggregate *order.Order) OrderDTO {
	id := aggregate.ID().Bytes()
	return OrderDTO{
		ID:            id,
		MaterialType:  aggregate.MaterialName(),
		CurrentStatus: aggregate.CurrentStatus(),
		IsDelivered:   aggregate.IsDelivered(),
		Version:       aggregate.Version(),
		History:       historyFromDomain(id, aggregate.History(), 0),
	}
}

// historyFromDomain maps entries[from:], numbering them from their index.
func historyFromDomain(orderID uuid.UUID, entries []order.HistoryEntry, from int) []StatusHistoryDTO {
	out := make([]StatusHistoryDTO, 0, len(entries)-from)
	for i := from; i < len(entries); i++ {
		out = append(out, StatusHistoryDTO{
			OrderID:     orderID,
			Position:    i,
			Stage:       entries[i].Stage(),
			CompletedAt: entries[i].CompletedAt(),
			Notes:       entries[i].Notes(),
		})
	}
	return out
}

// toDomain expects dto.History sorted by position. An unrecognized material
// type is carried by name instead of failing the row.
func toDomain(dto OrderDTO) (*order.Order, error) {
	id, err := kernel.UUIDFromBytes(dto.ID[:])
	if err != nil {
		return nil, err
	}

	history := make([]order.HistoryEntry, 0, len(dto.History))
	for _, h := range dto.History {
		entry, entryErr := order.NewHistoryEntry(h.Stage, h.CompletedAt, h.Notes)
		if entryErr != nil {
			return nil, entryErr
		}
		history = append(history, entry)
	}

	return order.RestoreOrderByMaterialName(id, dto.MaterialType, dto.CurrentStatus, history, dto.IsDelivered, dto.Version)
}
