// Package models defines the domain entities cached by randusr.
//
// Three shapes exist for the same data: the wire format decoded by the services package,
// the rows stored by the repositories package, and the types in this package, which are
// what every other layer (tasks, ui, server, formatter) works with.
//
//   - [User] : A cached profile. Its ID is derived from first and last name ([UserID]).
//   - [Address] : The location of a [User], stored separately and joined by user ID.
//   - [UserResult] : Position of a user within the most recent batch request.
//   - [UserDetail] : A user together with its address, as shown by detail views.
package models
