/*
Package ports defines the interfaces the vym scripting façade consumes.

The façade never touches a document directly: every edit goes through Model, every
window operation through Host, and every failure is reported through ScriptContext.
This keeps the façade testable without a running application or script engine.

# Key Interfaces

  - Model: The open mind-map document (tree, selection, history, slides, exports).
  - Branch / Item: Nodes of the map tree as seen by scripts.
  - Host: The application window owning all open documents.
  - ScriptContext: The calling script frame; raises typed errors.
  - ClipboardStore: Where copied subtrees are kept between copy and paste.
*/
package ports
