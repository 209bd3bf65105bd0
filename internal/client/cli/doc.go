// Package cli provides the interactive docwatch command-line client.
//
// It wires configuration, the REST client, the push channels and the
// document services behind a REPL. Typical flow: prompt for credentials,
// load the document list, open the list channel and execute user commands
// while a background watcher prints live updates.
//
// Key features:
//   - Login / Logout
//   - List, search and sort the document list
//   - Risk dashboard and summary of open documents
//   - Show a document and follow its AI analysis
//   - Sync signature status, delete, create and edit documents
//
// The REPL is started via App.Run(ctx), which blocks until the user exits.
package cli
