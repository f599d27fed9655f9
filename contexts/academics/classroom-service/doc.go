// Package classroom implements classes, enrollments, assignments and
// submissions for ClassTrack.
//
// Layering:
// - domain: entities, normalization rules, errors
// - application: role-gated commands and queries using explicit ports
// - ports: stable boundaries for persistence and member role lookups
// - adapters: concrete HTTP, memory and postgres implementations
// - transport: module-private DTOs for HTTP contracts
//
// Boundary notes:
// - User accounts belong to identity-access; this module only sees member
//   roles through ports.MemberDirectory.
// - Foreign keys into the users table are declared by the postgres adapter only.
package classroom
