// Package transmission runs whole BITS transmissions through the decoder and
// both reducers, producing one Report per input.
//
// Ownership boundary:
// - input limits and input loading
// - concurrent reduction of one decoded tree
// - decode metrics and outcome logging
// - output rendering per mode
package transmission
