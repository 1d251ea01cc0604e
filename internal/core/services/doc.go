// Package services implements the core application services: corpus
// ingestion into the chunk index, retrieval over the current snapshot,
// and citation formatting for the dialogue engine.
package services
