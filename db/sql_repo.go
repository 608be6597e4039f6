package db

import (
	"context"
	"errors"
	"fmt"

	"commander/model"

	"gorm.io/gorm"
)

type opKind int

const (
	opCreate opKind = iota
	opUpdate
	opDelete
)

type stagedOp struct {
	kind opKind
	cmd  *model.Command
}

// SQLRepo is a unit of work over a gorm connection. It is not safe for
// concurrent use; take a new one from SQLStore per request.
type SQLRepo struct {
	conn    *gorm.DB
	pending []stagedOp
}

func (r *SQLRepo) GetAllCommands(ctx context.Context) ([]model.Command, error) {
	var commands []model.Command
	if err := r.conn.WithContext(ctx).Find(&commands).Error; err != nil {
		return nil, fmt.Errorf("list commands: %w", err)
	}
	return commands, nil
}

func (r *SQLRepo) GetCommandByID(ctx context.Context, id int) (*model.Command, error) {
	var cmd model.Command
	err := r.conn.WithContext(ctx).First(&cmd, id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("get command %d: %w", id, err)
	}
	return &cmd, nil
}

func (r *SQLRepo) CreateCommand(cmd *model.Command) error {
	return r.stage(opCreate, cmd)
}

// UpdateCommand stages a full write of cmd. cmd must carry the ID of an
// existing command, normally because it was fetched from this repository.
func (r *SQLRepo) UpdateCommand(cmd *model.Command) error {
	return r.stage(opUpdate, cmd)
}

func (r *SQLRepo) DeleteCommand(cmd *model.Command) error {
	return r.stage(opDelete, cmd)
}

func (r *SQLRepo) stage(kind opKind, cmd *model.Command) error {
	if cmd == nil {
		return ErrNilCommand
	}
	r.pending = append(r.pending, stagedOp{kind: kind, cmd: cmd})
	return nil
}

// SaveChanges applies every staged operation inside a single transaction.
// The staged list is cleared whether or not the commit succeeds.
func (r *SQLRepo) SaveChanges(ctx context.Context) error {
	ops := r.pending
	r.pending = nil
	if len(ops) == 0 {
		return nil
	}

	err := r.conn.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		for _, op := range ops {
			var res *gorm.DB
			switch op.kind {
			case opCreate:
				op.cmd.ID = 0
				res = tx.Create(op.cmd)
			case opUpdate:
				res = tx.Model(op.cmd).Select("*").Updates(op.cmd)
			case opDelete:
				res = tx.Delete(op.cmd)
			}
			if res.Error != nil {
				return res.Error
			}
			// MySQL reports zero affected rows for no-op updates, so only
			// deletes are checked.
			if op.kind == opDelete && res.RowsAffected == 0 {
				return fmt.Errorf("command %d: %w", op.cmd.ID, ErrNotFound)
			}
		}
		return nil
	})
	if err != nil {
		return fmt.Errorf("save changes: %w", err)
	}
	return nil
}
