/*
Package script implements the vym scripting façade: the operations a script engine
exposes as the global objects "vym" (App) and "map" (Map).

Every operation is an entry of a dispatch table that declares its parameters and
whether it needs a selected branch. Calls go through one path:

 1. the operation is looked up by name,
 2. arguments are coerced to the declared parameter types,
 3. selection-scoped operations resolve the selected branch first,
 4. the model or host is invoked and failures are reported.

Failures are raised into the bound ports.ScriptContext and never returned as Go
errors; the operation then returns a neutral value ("", false, -1). Without a bound
context the error is logged and swallowed.

Engines call Map.Call / App.Call with loosely typed arguments. Go callers use the typed
methods (AddBranch, ExportMap, ...), which run through the same table.

Fixes selects corrected behavior for quirks existing scripts may depend on. The zero
value keeps the historical behavior.
*/
package script
