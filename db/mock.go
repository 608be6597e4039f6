package db

import (
	"context"

	"commander/model"
)

// MockStore serves canned commands and refuses every write. It exists for
// development against the API before a database is available.
type MockStore struct{}

func (MockStore) Repository() Repository { return mockRepo{} }

func (MockStore) Close() error { return nil }

type mockRepo struct{}

func cannedCommands() []model.Command {
	return []model.Command{
		{ID: 0, HowTo: "Some text", Line: "The details", Platform: "The OS"},
		{ID: 1, HowTo: "Some text1", Line: "The details1", Platform: "The other OS"},
		{ID: 2, HowTo: "Some text2", Line: "The details2", Platform: "The other other OS"},
	}
}

func (mockRepo) GetAllCommands(context.Context) ([]model.Command, error) {
	return cannedCommands(), nil
}

// GetCommandByID ignores id and always answers with the first canned command.
func (mockRepo) GetCommandByID(context.Context, int) (*model.Command, error) {
	cmd := cannedCommands()[0]
	return &cmd, nil
}

func (mockRepo) CreateCommand(*model.Command) error { return ErrNotImplemented }

func (mockRepo) UpdateCommand(*model.Command) error { return ErrNotImplemented }

func (mockRepo) DeleteCommand(*model.Command) error { return ErrNotImplemented }

func (mockRepo) SaveChanges(context.Context) error { return ErrNotImplemented }
