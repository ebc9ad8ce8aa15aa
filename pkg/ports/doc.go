/*
Package ports defines the driven ports (interfaces) for the pips engine.

These interfaces decouple the core from external implementations, allowing
the engine to work with different expression libraries, session stores, and
chart backends.

# Key Interfaces

  - Library: catalog of named dice expressions (Loam directory, memory).
  - StateStore: persistence for interactive session state (memory, Redis).
  - ChartRenderer: turns a distribution into a renderable chart artifact.
*/
package ports
