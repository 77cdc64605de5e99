package dashboard

import "errors"

var (
	// ErrUnknownWidgetType rejects widget types outside the supported enumeration.
	ErrUnknownWidgetType = errors.New("dashboard: unknown widget type")
	// ErrLayoutMismatch is returned when a replacement layout is not a permutation of the widgets.
	ErrLayoutMismatch = errors.New("dashboard: layout does not match widgets")
	// ErrLayoutConstraint is returned when a layout item breaks its size or position constraints.
	ErrLayoutConstraint = errors.New("dashboard: layout constraint violated")
	// ErrInvalidOverrides rejects override spans above MaxSpan.
	ErrInvalidOverrides = errors.New("dashboard: invalid widget overrides")
	// ErrIDExhausted is returned when the id generator keeps producing unusable ids.
	ErrIDExhausted = errors.New("dashboard: could not allocate widget id")
	// ErrInvalidState is returned by Load when a state breaks an invariant.
	ErrInvalidState = errors.New("dashboard: invalid state")
	// ErrMissingViewer is returned when an operation needs a user id.
	ErrMissingViewer      = errors.New("dashboard: viewer user id is required")
	errMissingLayoutStore = errors.New("dashboard: layout store not configured")
)
