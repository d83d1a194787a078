package application

import (
	"errors"
	"fmt"
)

// Sentinel errors for common conditions
var (
	ErrVaultNotFound  = errors.New("vault not found")
	ErrEmptySelectors = errors.New("no selectors given")
)

// VaultError represents a failure to access the vault root
type VaultError struct {
	Path   string
	Reason string
}

func (e *VaultError) Error() string {
	return fmt.Sprintf("cannot open vault %s: %s", e.Path, e.Reason)
}

func (e *VaultError) Is(target error) bool {
	return target == ErrVaultNotFound
}

// DocumentError represents a per-document failure during a summary build.
// Builds never abort on these; the document degrades to zero matches.
type DocumentError struct {
	Path string
	Err  error
}

func (e *DocumentError) Error() string {
	return fmt.Sprintf("document %s: %v", e.Path, e.Err)
}

func (e *DocumentError) Unwrap() error {
	return e.Err
}
