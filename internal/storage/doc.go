// Package storage persists extracted park records into the relational schema
// (parks plus details, camping, fees, seasons and attractions) using bun.
// SQLite is the default backend; Postgres is supported through pgdialect.
package storage
