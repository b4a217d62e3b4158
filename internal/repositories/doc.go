// Package repositories implements SQLite persistence for the random user cache.
//
// Key Implementations:
//   - [UserRepository] : user profiles keyed by the lower("first-last") id
//   - [AddressRepository] : one address per user, cascaded on user deletion
//   - [UserResultRepository] : 1-based position of each user in the latest batch
//   - [Store] : groups the three and writes whole batches with [Store.SaveBatch]
//
// Every write is an upsert. Users are updated in place (ON CONFLICT DO UPDATE) rather
// than replaced so dependent rows are never cascaded away. Repositories accept either a
// [sql.DB] or a [sql.Tx], which lets [Store.SaveBatch] run user, result and address
// writes in one transaction.
//
// Lookups that find nothing return errors matching [shared.ErrUserNotFound] or
// [shared.ErrAddressNotFound] whose text is "Can't find user with user id X" or
// "Can't find address with user id X".
package repositories
