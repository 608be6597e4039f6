package model

import (
	"sync"

	"github.com/go-playground/validator/v10"
)

// Command is a stored terminal command reminder.
type Command struct {
	ID       int    `gorm:"column:Id;primaryKey;autoIncrement"`
	HowTo    string `gorm:"column:HowTo;size:250;not null" validate:"required,max=250"`
	Line     string `gorm:"column:Line;not null" validate:"required"`
	Platform string `gorm:"column:Platform;not null" validate:"required"`
}

// TableName keeps the table name stable regardless of gorm's naming strategy.
func (Command) TableName() string {
	return "Commands"
}

var (
	validateOnce sync.Once
	validate     *validator.Validate
)

// Validator returns the process-wide validator used for commands and their DTOs.
func Validator() *validator.Validate {
	validateOnce.Do(func() {
		validate = validator.New(validator.WithRequiredStructEnabled())
	})
	return validate
}

// Validate checks the field constraints of c.
func (c Command) Validate() error {
	return Validator().Struct(c)
}
