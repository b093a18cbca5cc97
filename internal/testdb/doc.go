// Package testdb holds helpers for integration tests that need a real
// PostgreSQL database. Tests skip unless TODO_TEST_DATABASE_URL is set, and
// each test runs inside a transaction that is rolled back on cleanup.
package testdb
