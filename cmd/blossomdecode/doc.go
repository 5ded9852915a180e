// Command blossomdecode batch-decodes a file of syndromes against a
// detector error model.
//
// Usage:
//
//	blossomdecode -dem model.dem -syndromes syndromes.txt
//
// The DEM file uses the format described in dem/doc.go (error(p) lines,
// optional detector lines, repeat blocks). The syndromes file holds one syndrome per line, each a string
// of '0'/'1' characters exactly numDetectors long; blossomdecode prints
// one line of predicted observable bits per syndrome, in the same order.
//
// Flags:
//
//	-repeat-offset int   per-iteration detector index offset for repeat blocks
//	-metrics             register Prometheus decode counters and a weight histogram
//	-metrics-addr string serve /metrics on this address while decoding
//	-verbose              log one debug line per decode via zerolog
//
// Exit codes: 0 success, 1 malformed DEM/argument error, 2 syndrome length
// mismatch.
package main
