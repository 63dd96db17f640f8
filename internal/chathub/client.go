package chathub

import "chatmate/backend/internal/models"

// Client is the interface for one live connection of an authenticated
// user. It abstracts the underlying transport, allowing the hub to manage
// different connection types uniformly. A user may own any number of
// concurrent clients.
type Client interface {
	// GetUserID returns the verified identity the connection belongs to.
	GetUserID() string

	// GetSendChannel returns the channel to which the hub sends events
	// intended for this specific connection. It is a send-only channel.
	GetSendChannel() chan<- models.ChatEvent

	// Run starts the client's read and write pumps, which handle incoming
	// and outgoing events.
	Run()
	// Close gracefully shuts down the client's connection and associated
	// channels. It is safe to call more than once.
	Close()
}
