// Package idl describes the collaborators the binding resolver consumes.
//
// # Contracts
//
//   - Database gives access to parsed interfaces and enums. Parsing the
//     interface description language is not done here; the database is
//     expected to be fully loaded before resolution starts.
//   - Renamer owns every identifier-mangling decision. The resolver never
//     invents exposed names, it always asks the Renamer.
//   - DocStore returns freeform documentation comments. A missing entry is
//     not an error.
//
// # Reference implementations
//
// MemDatabase, DefaultRenamer and JSONDocStore are small in-memory
// implementations used by the CLI and tests. MemDatabase can be populated
// from a TOML description (see LoadDatabase); it is a data file listing
// interfaces, operations and attributes, not IDL source.
//
// All values handed out by these types are treated as immutable once
// resolution begins.
package idl
