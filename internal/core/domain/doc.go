// Package domain contains the core business entities and errors for
// voxcart: corpus documents and chunks, retrieval results, orders, and
// the tool call protocol shared by every driving adapter.
package domain
