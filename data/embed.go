// Package data carries the embedded MariaDB bootstrap scripts used by
// the test-container tooling. The DDL hand-mirrors the GORM models;
// tools/inspect_schema.go dumps what AutoMigrate generates when the two
// need realigning.
package data

import _ "embed"

// InitdbMariaDBTables creates the estates schema and tables.
//
//go:embed initdb/mariadb/002-ddl-tables.sql
var InitdbMariaDBTables string

// InitdbMariaDBPrivileges grants the service user its table rights.
//
//go:embed initdb/mariadb/003-ddl-privileges.sql
var InitdbMariaDBPrivileges string
