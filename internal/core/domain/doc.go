// Package domain contains the core business entities and errors for ragdex.
// It has no dependencies on infrastructure or frameworks.
package domain
