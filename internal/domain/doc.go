// Package domain defines the core entities of the application (User, Post,
// Product) together with their validation rules and partial-update merges.
// Entities are plain structs with no persistence or transport concerns.
package domain
