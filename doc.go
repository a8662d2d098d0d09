// Package main is the entry point of myapp, a small blog. Users register,
// log in and write posts. The application is served by Fiber, persists with
// gorm (SQLite by default) and keeps its settings and database in an
// instance directory.
package main
