package utils

import (
	"os"

	errors "github.com/go-errors/errors"
	pkg_errors "github.com/pkg/errors"
)

var (
	NotFoundError       = errors.New("Not found")
	NotADirectoryError  = errors.New("Not a directory")
	InvalidArgError     = errors.New("Invalid argument")
	UnsupportedFormat   = errors.New("Unsupported format")
	UnknownAccessorErr  = errors.New("Unknown accessor")
	AccessorClosedError = errors.New("Accessor closed")
)

// Accessors may return os errors or our own sentinels so check for
// both.
func IsNotFound(err error) bool {
	return pkg_errors.Is(err, NotFoundError) || pkg_errors.Is(err, os.ErrNotExist)
}
