// Package packet owns the BITS packet tree and its decoder.
//
// Ownership boundary:
// - packet data model (literal and operator nodes)
// - decoding exactly one packet from a bits.Reader
// - generic tree traversal shared by reducers
// - text and JSON projections of a decoded tree
package packet
