// Package bits owns the bit-addressable cursor used by the packet decoder.
//
// Ownership boundary:
// - hex digit to packed nibble conversion
// - fixed-width MSB-first reads
// - cursor accounting (bits consumed)
package bits
