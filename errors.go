package bpmap

import "bpmap/operator"

// ErrBroken and ErrTemporary are the two client-visible error kinds from
// spec.md §7, re-exported as package-level sentinels so callers can use
// errors.Is(err, bpmap.ErrBroken) without importing the operator package.
var (
	ErrBroken        = operator.ErrBroken
	ErrTemporary     = operator.ErrTemporary
	ErrValueTooLarge = operator.ErrValueTooLarge
)
