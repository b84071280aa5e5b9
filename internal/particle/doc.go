// Package particle defines the particle record and the container contract
// shared by every force traversal.
//
// A [Container] owns a contiguous slice of [Particle] values. Callers hold
// indices or short-lived pointers obtained through [Container.At]; both are
// invalidated by the next Add, Remove or boundary pass. The [Direct]
// container is the flat list used for all-pairs traversal; the linked-cell
// container lives in its own package and satisfies the same interface.
package particle
