// Package services implements the driving port interfaces.
// Services contain the core business logic and orchestrate
// calls to driven ports (adapters).
//
// Services are pure Go with no CGO. Outside the standard library they use
// uuid for ids, x/text for display casing, bcrypt for admin sessions and
// decimal/humanize for invoice money.
package services
