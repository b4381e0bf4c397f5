// Package cli provides the interactive gophtodo terminal client.
//
// It wires configuration, the local metadata database, the session manager
// and the API services, then runs a line-oriented REPL until the user exits.
// A session stored by a previous run is picked up at start-up, so a user who
// logged in earlier goes straight to their list.
package cli
