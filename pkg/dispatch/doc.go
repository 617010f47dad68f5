// Package dispatch routes component interactions. A dropdown pick is remembered in the selection cache until the
// same user presses the panel's create button; button presses go to the ticket lifecycle. Claim and close buttons
// find their ticket through the channel they were pressed in, and are silently ignored outside an open ticket.
package dispatch
