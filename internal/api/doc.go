// Package api implements the HTTP surface: request/response models,
// handlers for the user, post, and product endpoints, and the mapping of
// internal errors to HTTP status codes.
package api
