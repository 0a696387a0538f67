// Package driven defines the interfaces that core calls OUT to infrastructure.
//
// These are the "driven" or "secondary" ports in hexagonal architecture.
// Core services depend on these interfaces, and infrastructure adapters
// implement them.
//
// # Required Interfaces
//
// These must be provided for the application to function:
//
//   - ProductStore, CategoryStore, BannerStore: Catalog persistence
//   - OrderStore, MessageStore: Order and chat persistence
//   - SettingsStore, LoginStatStore: Site settings and admin login counters
//   - SessionStore: Admin session persistence
//   - ImageNormalizer: Resizes and re-encodes uploaded photos
//   - InvoiceRenderer: Renders an invoice layout to a document
//   - ConfigStore: Application configuration
//
// # Optional Interfaces
//
// These can be nil - the application degrades gracefully:
//
//   - LLMService: Language model operations. Without it, product suggestions
//     and style advice report ErrLLMUnavailable and manual entry keeps working.
//   - LatencyRecorder: Call latency statistics.
//
// # Import Rules
//
//   - Can Import: domain package only
//   - Cannot Import: Any adapter package
package driven
