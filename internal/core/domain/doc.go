// Package domain defines the core business entities for the haat storefront.
//
// This package is the innermost layer of the hexagon. It defines:
//
//   - Product, Category, Banner: the catalog
//   - Order, OrderStatus: customer orders and their lifecycle
//   - Message: pre-order and support chat threads
//   - SiteSettings: the single site-wide configuration document
//   - LoginStat: per-day admin login counters
//   - InlineImage, Invoice: value types shared by the image and invoice pipelines
//
// # Import Rules
//
//   - Can Import: Standard library only
//   - Cannot Import: Any internal/ package, any external dependency
package domain
