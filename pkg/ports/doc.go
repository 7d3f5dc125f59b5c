/*
Package ports defines the driven ports (interfaces) for the TPER session driver.

These interfaces decouple the session loop from the workflow engine and the
engine from its infrastructure, so each side can be replaced or faked in tests.

# Key Interfaces

  - Workflow: One ephemeral workflow instance (run to completion, then release).
  - WorkflowFactory: Constructs a fresh Workflow for every request.
  - Completer: A text-completion backend used by the engine's phases.
  - Scratchpad: Per-instance temporary storage for phase artifacts.
*/
package ports
