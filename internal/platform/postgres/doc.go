// Package postgres provides PostgreSQL implementations of the store interfaces.
//
// Connections go through the pgx database/sql driver. The schema ships with
// the binary as embedded goose migrations; run Migrate before serving.
package postgres
