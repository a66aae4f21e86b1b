// Package services provides domain services that orchestrate business
// operations across multiple domain entities in the freight operations
// system. It implements workflows that don't naturally belong to a single
// aggregate root.
//
// The package includes:
//   - DeliveryCascade: a domain service that synthesizes delivery ledger
//     records from a committed delivery on a shipment or its documents
//
// Domain services coordinate between aggregates, implementing business logic
// that spans multiple bounded contexts following Domain-Driven Design
// principles.
package services
