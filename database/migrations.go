package database

import "embed"

//go:embed migration/*.sql
var Migrations embed.FS

const MigrationsDir = "migration"
