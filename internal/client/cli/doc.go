// Package cli is the interactive terminal front end for the helpdesk client.
// It wires the durable store, session manager, and synchronization cache
// together and drives them from a small read-eval-print loop.
package cli
