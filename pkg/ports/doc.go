/*
Package ports defines the driven ports (interfaces) of the phrase engine.

These interfaces decouple the traversal core from the concrete model stores and
output sinks.

# Key Interfaces

  - TransitionModel: read-only lookup of successors and cumulative weights per context.
  - ModelSource: loads a TransitionModel from a file, Redis, or any other store.
  - Emitter: receives the rendered lines for one finished work item.
*/
package ports
