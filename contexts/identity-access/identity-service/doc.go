// Package identity implements user accounts and credentials for ClassTrack.
//
// Layering:
// - domain: user entity, role vocabulary, errors
// - application: registration, account administration, login, token authentication, seeding
// - ports: stable boundaries for persistence, password digests and bearer tokens
// - adapters: concrete HTTP, memory, postgres and credential implementations
// - transport: module-private DTOs for HTTP contracts
//
// Boundary notes:
// - Keep this module self-contained under identity-access context.
// - Other contexts read user roles through RoleDirectory, never through these packages.
package identity
