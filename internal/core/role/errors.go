package role

import "errors"

var (
	// ErrRoleNotFound は役職が存在しない場合に返却されます。
	ErrRoleNotFound = errors.New("role: not found")
	// ErrTitleAlreadyExists は役職名が重複した場合に返却されます。
	ErrTitleAlreadyExists = errors.New("role: title already exists")
)
