// Package fair holds shared helpers for the expression data preparation
// tools: delimiter sniffing, transparent decompression of table inputs, and
// path expansion for command line flags.
package fair
