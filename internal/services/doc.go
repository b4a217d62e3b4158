// Package services implements clients for the remote random user API.
//
// # UserSource
//
// [UserSource] is the abstraction the tasks package depends on. [RandomUserService]
// implements it by calling GET {base_url}/api?results={size} and decoding the
// {"results": [...], "info": {...}} document into [UsersResponse].
//
// Requests go through a [rate.Limiter] configured from api.rate_limit, so the TUI's
// "load again" key and the HTTP API cannot burst the public endpoint.
//
// # Validation
//
// Decoded batches are checked with go-playground/validator struct tags. A record
// without a first name, last name, email or birth date fails the batch with
// [shared.ErrInvalidResponse]. Empty batches are not an error here; the tasks
// package decides what an empty batch means.
//
// # Mapping
//
// [UserResponse.ToUser] and [UserResponse.ToAddress] translate the wire format into
// models. The user ID is lower("first-last"), the street is "number name", and the
// birthday is the dob.date timestamp in Unix seconds. [Postcode] accepts the numeric
// and string forms the API emits.
//
// # Raw access
//
// [APIService] performs raw GETs for the `randusr api get` debugging command.
package services
