package web

import "errors"

var (
	ErrEmptyTable     = errors.New("route table has no views")
	ErrInvalidRoute   = errors.New("invalid route pattern")
	ErrDuplicateRoute = errors.New("duplicate route")
	ErrInvalidHistory = errors.New("invalid history mode")
	ErrInvalidBase    = errors.New("invalid base path")
	ErrViewNotFound   = errors.New("view template not found")
)
