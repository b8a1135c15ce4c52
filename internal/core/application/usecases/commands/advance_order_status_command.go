package commands

import (
	"errors"
	"strings"

	"tailorshop/internal/core/domain/model/kernel"
	"tailorshop/internal/pkg/guard"
)

var (
	ErrAdvanceOrderStatusCommandIsNotConstructed = errors.New(
		"AdvanceOrderStatusCommand must be created via NewAdvanceOrderStatusCommand constructor",
	)
)

// AdvanceOrderStatusCommand moves one order forward along its stage path.
// An empty target means the next stage; notes are optional.
//
// Example:
//
//	cmd, err := NewAdvanceOrderStatusCommand(orderID, "", "collar redone")
//	if err != nil {
//	    return err
//	}
//	result, err := handler.Handle(ctx, cmd)
type AdvanceOrderStatusCommand struct { //nolint:recvcheck //using for validation
	orderID kernel.UUID
	target  string
	notes   string

	guard guard.ConstructorGuard
}

func NewAdvanceOrderStatusCommand(orderID kernel.UUID, target, notes string) (AdvanceOrderStatusCommand, error) {
	cmd := AdvanceOrderStatusCommand{
		target: strings.TrimSpace(target),
		notes:  strings.TrimSpace(notes),
		guard:  guard.NewConstructorGuard(),
	}

	if err := cmd.setOrderID(orderID); err != nil {
		return AdvanceOrderStatusCommand{}, err
	}

	return cmd, nil
}

// Validate ensures the command was created through the constructor.
func (c AdvanceOrderStatusCommand) Validate() error {
	return c.guard.Validate(ErrAdvanceOrderStatusCommandIsNotConstructed)
}

func (c AdvanceOrderStatusCommand) OrderID() kernel.UUID {
	return c.orderID
}

// Target is the requested stage, empty for "next".
func (c AdvanceOrderStatusCommand) Target() string {
	return c.target
}

func (c AdvanceOrderStatusCommand) Notes() string {
	return c.notes
}

func (c *AdvanceOrderStatusCommand) setOrderID(orderID kernel.UUID) error {
	if err := orderID.Validate(); err != nil {
		return err
	}

	c.orderID = orderID
	return nil
}
