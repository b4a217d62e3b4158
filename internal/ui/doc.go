// Package ui implements an interactive terminal interface using bubbletea's Elm architecture.
//
// Screens live on a push/pop navigation stack:
//  1. [ListScreen] : the latest batch of users. Press a to enter a batch size.
//  2. [DetailScreen] : pushed with enter on a user, popped with esc.
//
// Each screen tracks a [LoadState] of Loading, Success or Failed. The list starts in
// Success with no users. Failures render the error message.
//
// Loads are latest-wins: every request carries a sequence number and its own
// cancellable context. Starting a new load cancels the previous one, and messages
// from superseded requests are dropped in [Model.Update].
//
// Keyboard navigation uses vim-style bindings (j/k, enter, esc, a, r, q) with contextual help displayed via charmbracelet/bubbles/help.
package ui
