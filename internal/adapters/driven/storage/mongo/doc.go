// Package mongo implements the catalog stores on MongoDB.
//
// Each collection keeps the field names used by the storefront documents,
// so an existing database can be pointed at directly. Watchers use change
// streams when the server supports them and fall back to polling on a
// standalone server.
package mongo
