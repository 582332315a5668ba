package ports

// MessageFrontend defines the interface for a message-receiving front end
// (HTTP API, interactive CLI) that feeds text into the analysis pipeline
// and renders the verdict back to the user.
type MessageFrontend interface {
	// Start starts the front end
	Start() error

	// Stop stops the front end
	Stop() error
}
