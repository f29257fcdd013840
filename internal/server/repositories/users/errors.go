package users

import (
	"fmt"

	"github.com/dmitrijs2005/settingskeeper/internal/common"
)

// Columns that carry a uniqueness constraint.
const (
	FieldUserName = "username"
	FieldEmail    = "email"
)

// DuplicateError reports which unique column rejected a Create.
type DuplicateError struct {
	Field string
	Value string
}

func (e *DuplicateError) Error() string {
	return fmt.Sprintf("%s %q already exists", e.Field, e.Value)
}

// Is lets errors.Is(err, common.ErrorAlreadyExists) match.
func (e *DuplicateError) Is(target error) bool {
	return target == common.ErrorAlreadyExists
}
