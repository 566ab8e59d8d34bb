// Package domain contains core concepts of the chat system.
// This file defines User entities and related invariants.
// No runtime, network, or UI logic should be added here.
package domain

type UserID string

// User is created once per distinct name and never changes afterwards.
type User struct {
	ID   UserID
	Name string
}
