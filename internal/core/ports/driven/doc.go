// Package driven defines the outbound port interfaces the core depends
// on: the corpus source, per-format normalisers, and the external order
// API. Adapters implement these; services consume them.
package driven
