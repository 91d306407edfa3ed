// Package pattern holds the named regular-expression formats that schemas
// reference symbolically instead of embedding raw expressions.
//
// A Registry is an immutable name → source table. Formats are composed with
// placeholders: every "<name>" in a format string is replaced by the source
// registered under name, while "\<name>" is emitted as the literal "<name>".
// Unknown names are left untouched.
//
//	reg := pattern.Default()
//	re, err := reg.Compile("<mobile_number>")
//	if err != nil {
//	    // the expanded text is not a valid expression
//	}
//	re.MatchString("0812345678") // true
//
// Registries never change after construction, so one value can be shared by
// any number of goroutines. Layering (for example per-tenant formats loaded
// from a file) produces a new Registry with Merge or Load.
package pattern
