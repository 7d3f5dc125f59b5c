/*
Package domain contains the core domain models of the TPER session driver.

It defines the values that flow between the interactive driver and the workflow
engine it delegates to. This package is kept pure and free of external
dependencies like I/O or persistence, following Hexagonal Architecture principles.

# Key Entities

  - Result: The printable artifact produced by a completed workflow run.
  - Phase: One stage of a Think-Plan-Execute-Review iteration.
  - LifecycleHooks: Observability callbacks fired by the workflow engine.
  - Errors: Sentinels and typed failures for the driver's error taxonomy.
*/
package domain
