// Package postgres provides PostgreSQL implementations of the store
// interfaces. All statements are plain SQL executed through database/sql
// with the pgx stdlib driver; driver errors are translated into the store
// package's error taxonomy by MapError.
package postgres
