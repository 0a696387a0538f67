// Package memory provides in-process implementations of the driven store
// ports. Data lives for the lifetime of the process; watchers are fed by a
// watch.Hub per collection.
package memory
