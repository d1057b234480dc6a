package messaging

import "errors"

var (
	// ErrEmptyMessage: neither template-rendered text nor a literal
	// message resolved to anything sendable.
	ErrEmptyMessage = errors.New("message is empty")

	// ErrNoRecipient: the request carried neither a tenant id nor a phone.
	ErrNoRecipient = errors.New("no recipient")

	ErrEmptyTemplateName = errors.New("template name is empty")
	ErrEmptyTemplateBody = errors.New("template body is empty")
	ErrInvalidCategory   = errors.New("invalid template category")
)
