// Package service implements the repository operations exposed by the HTTP
// surface: uniqueness and existence pre-checks, transactional units of work,
// and the translation of store errors into the API's error taxonomy. Each
// operation is a single request/response unit of work with no cross-request
// state.
package service
