// Package models defines domain entities and persistence interfaces for the Friendify service.
//
// The package contains two categories of types:
//
// 1. Data Transfer Objects (DTOs): Lightweight structs assembled for request handling
//   - [Snapshot] : A user's identity plus their ordered top-track list
//   - [TrackInfo] : Track metadata as it appears in game state and on the wire
//   - [RoundEntry] : A deduplicated track annotated with its owners
//   - [GameState] : The mutable per-lobby game blob (rounds, round index, scores)
//
// 2. Persistent Entities: Database-backed models with full lifecycle management
//   - [User] : A registered player keyed by their external Spotify id
//   - [SavedTrack] : One row of a user's top-track snapshot
//   - [Lobby] : A joinable multiplayer session with serialized game state
//   - [Membership] : The relation from a user to a lobby
//
// Persistent entities implement the [Model] interface providing identity, timestamps,
// and validation; the repositories package checks every entity through it before
// writing rows. Repository shapes themselves are domain-specific (snapshots are
// saved wholesale, lobby state writes carry a version check), so there is no
// generic CRUD contract here.
package models
