package common

const (
	// MaxContactRequestBody limits JSON request bodies for the contact endpoint.
	MaxContactRequestBody = 64 << 10
	// MaxNameRunes limits the submitter name.
	MaxNameRunes = 200
	// MaxMessageRunes limits the message body.
	MaxMessageRunes = 5000
)
