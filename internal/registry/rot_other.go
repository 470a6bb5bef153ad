//go:build !windows

package registry

import (
	"context"

	"github.com/Iron-Ham/vslaunch/internal/errors"
	"github.com/Iron-Ham/vslaunch/internal/logging"
)

// NewSystem returns the platform registry. Only Windows has one; elsewhere
// every enumeration reports ErrUnsupportedPlatform, which snapshots treat as
// "no instances running".
func NewSystem(logger *logging.Logger) Registry {
	return RegistryFunc(func(context.Context) ([]Entry, error) {
		return nil, errors.ErrUnsupportedPlatform
	})
}
