// Package normalisers provides implementations of the Normaliser
// interface for the supported corpus formats. Each normaliser extracts
// plain text from one file kind and normalises whitespace so that
// chunking and scoring operate on canonical text.
//
// The Registry selects a normaliser by file kind.
package normalisers
