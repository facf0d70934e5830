// Package store defines the persistence interfaces for the application's
// entities, the error taxonomy shared by all implementations, and the
// transaction helper used for multi-statement units of work.
package store
