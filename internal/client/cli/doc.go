// Package cli provides the interactive triplog command-line client.
//
// It wires configuration, the local session store, the resource API services,
// and an interactive REPL. Typical flow: rehydrate the persisted session (or
// prompt for login/registration), load the user's trips, and execute commands
// against the trip list controller.
//
// Key features:
//   - register / login / logout / profile update
//   - list trips with search, vehicle filter, sort and favorites-only view
//   - add / edit / delete trips, toggle favorites
//   - per-trip photo gallery management (add, remove, highlight)
//   - aggregate statistics over the full collection
//
// The REPL is started via App.Run(ctx), which blocks until the user exits.
// All business rules live in the services layer; this package only collects
// input, validates form fields, and renders output.
package cli
