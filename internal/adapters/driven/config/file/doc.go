// Package file provides file-based implementations of driven port interfaces.
//
// Adapters:
//   - ConfigStore: TOML configuration at ~/.haat/config.toml
//   - PromptStore: editable AI prompts under ~/.haat/prompts
//   - SessionStore: the admin unlock at ~/.haat/session.json
package file
