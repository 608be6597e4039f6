package db

import (
	"context"
	"errors"

	"commander/model"
)

var (
	// ErrNotFound is returned when no command has the requested id.
	ErrNotFound = errors.New("command not found")
	// ErrNotImplemented is returned by every mutating operation of the mock store.
	ErrNotImplemented = errors.New("not implemented")
	// ErrNilCommand is returned when a nil command is staged.
	ErrNilCommand = errors.New("command is nil")
)

// Repository is the data access surface for commands.
//
// Create, Update and Delete only stage work; nothing reaches the backing
// store until SaveChanges commits every staged operation at once. Created
// commands receive their ID during SaveChanges.
type Repository interface {
	GetAllCommands(ctx context.Context) ([]model.Command, error)
	GetCommandByID(ctx context.Context, id int) (*model.Command, error)
	CreateCommand(cmd *model.Command) error
	UpdateCommand(cmd *model.Command) error
	DeleteCommand(cmd *model.Command) error
	SaveChanges(ctx context.Context) error
}

// Store hands out request-scoped repositories over one configured backend.
type Store interface {
	Repository() Repository
	Close() error
}
