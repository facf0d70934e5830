// Package mocks provides hand-written test doubles for the store and
// service interfaces. Each mock exposes function fields for customizable
// behavior with simple defaults when a field is left nil.
package mocks
