// Package cli provides the interactive Imagen Studio command-line client.
//
// It wires configuration, local storage and services into a REPL with three
// screens: the signed-out auth screen (login, signup, simulated password
// reset), the reset link screen, and the generator screen. Which screen is
// shown follows from the persisted session flag and the opened location,
// see router.Resolve.
//
// The REPL is started via App.Run(ctx, location), which blocks until the
// user exits.
package cli
