// Package batch enumerates input files, runs the per-file pipeline across
// a fixed-size worker pool and exports the resulting chunks with their
// B_partNNN.wav naming.
package batch
