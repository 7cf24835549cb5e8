package ports

import "sourcemod-installer/internal/types"

// PagerPort displays long-form text, paginating when the session
// allows it.
type PagerPort interface {
	Page(text string) error
}

// ConfirmPort asks the operator a yes/no question. Indeterminate means
// no usable answer could be obtained, for example in a non-interactive
// session.
type ConfirmPort interface {
	Confirm(prompt string) types.Consent
}
