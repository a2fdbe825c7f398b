// Package kernel provides the primitives shared by every aggregate of the
// dispatch domain: typed identifiers and grid locations.
//
// Identifiers mirror the integer types used on the wire by the world simulator
// and the order source, so values cross adapters without conversion.
package kernel
