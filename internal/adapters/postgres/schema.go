package postgres

import _ "embed"

// Schema is the backend DDL. Deployments apply schema.sql with psql; tests
// apply this copy against a scratch database. Statements are idempotent.
//
//go:embed schema.sql
var Schema string
