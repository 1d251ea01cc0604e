// Package bridge connects the dialogue engine to the local knowledge
// retriever and the order-lookup collaborator. It validates tool calls
// against a closed schema, dispatches them with a deadline, and formats
// results and failures for re-injection into the conversation, so a
// tool call can never hang or tear down the real-time turn loop.
package bridge
