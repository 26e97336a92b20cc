// Package models holds the value types exchanged between the game engine
// and its transport adapters.
package models

// PlayerID is the opaque identity of a player. The transport decides its
// shape (a numeric chat user id, a uuid, ...); the engine only compares it.
type PlayerID string

// Player pairs an identity with a presentation name. DisplayName is never
// part of equality and may change between events without affecting
// identity.
type Player struct {
	ID          PlayerID
	DisplayName string
}
