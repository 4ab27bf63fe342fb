/*
Package domain contains the core domain models of the phrase engine.

It defines the entities the traversal works on and is kept free of I/O and
concurrency concerns.

# Key Entities

  - Context: the fixed-size token window used as a lookup key into a transition model.
  - Transition: successor tokens plus their cumulative weights for one context.
  - WorkItem: a (context, remaining depth, prefix) batch handed to a worker, or a sentinel.
*/
package domain
