/*
Package domain contains the value types shared by the vym scripting façade and the
adapters that implement the document model.

It is kept free of I/O so that the façade, the in-memory model and the script engines
agree on one vocabulary without depending on each other.

# Key Entities

  - ScriptError: A categorised failure reported into the calling script (reference,
    syntax, range or unknown).
  - Pen: Width, color and style of a cross-link.
  - ExportRequest: The resolved arguments of one exporter invocation.
  - LoadMode / ContentFilter: How a map file is merged into an open document.
  - TaskStatus / FrameType: Named branch attributes exposed to scripts.
*/
package domain
