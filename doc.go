// Package main provides the contractflow-admin command line tool.
// It maintains the role registry of the ContractFlow contract-management
// application: roles with their default permissions, and the users holding
// them, persisted through gorm in MySQL, PostgreSQL or SQLite.
package main
