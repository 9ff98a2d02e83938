// Package domain contains the core business entities and rules for the
// clause-timeline analysis pipeline. It has no dependencies on adapters
// or infrastructure.
package domain
