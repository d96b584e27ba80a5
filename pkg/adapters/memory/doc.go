// Package memory provides an in-memory vym map model, a host that holds open maps,
// and an in-process clipboard.
//
// Maps are trees of map centers, branches and images. Items are addressed by
// UUID and by selector ("mc:0,bo:1,fi:0"). Edits are recorded as snapshot pairs,
// so Undo and Redo restore whole documents. Maps load from and save to the vym
// XML format through package xmlobj.
package memory
