// Package tasks implements the random user use cases with real-time progress reporting.
//
// # Core Operations
//
// [UserEngine] combines a [services.UserSource] with a [repositories.Store]:
//
//  1. [UserEngine.LoadUsersBySize] : fetch -> map -> upsert -> query
//     - Rejects sizes below 1 with [shared.ErrInvalidSize]
//     - Rejects empty batches with [shared.ErrEmptyResults]
//     - Writes users, result indexes and addresses in one transaction
//     - Returns the cached users at positions 1..len(batch)
//
//  2. [UserEngine.LoadUserByID], [UserEngine.LoadAddressByUserID] and
//     [UserEngine.LoadUserDetail] : cache lookups for the detail screen
//
//  3. [UserEngine.SyncAvatars] : download avatars of cached users
//     - Bounded worker pool fed through a rate limiter
//     - Per-user failures are collected, not fatal
//     - Writes avatars_manifest.json summarizing the run
//
// # Progress Reporting
//
// Operations that accept a progress channel send [ProgressUpdate] values using
// select with default, so a slow or absent consumer never blocks the operation.
package tasks
