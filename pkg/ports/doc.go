/*
Package ports defines the driven ports (interfaces) of the expect validator.

These interfaces decouple validation from where schema documents live, so the
same Validator works against memory, a directory of YAML/JSON files, or Redis.

# Key Interfaces

  - SchemaStore: Saves, loads, deletes and lists raw schema documents by name.
  - Watchable: Notifies about schemas changed outside the process (e.g. edited files).
*/
package ports
