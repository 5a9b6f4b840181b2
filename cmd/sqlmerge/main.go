// Package main provides a CLI that upserts or merges record files into a SQL Server table.
//
// Usage:
//
//	sqlmerge [flags] <command>
//
// The job (table, columns, branch actions) is read from sqlmerge.yaml, records are read
// from a JSON, YAML or TOML file. Commands that touch the database need --db or database
// settings in the config file, --dry-run only prints the statement.
package main

func main() {
	Execute()
}
