// Package correlate attaches documentation comments to declaration records,
// builds the ownership tree of entities and resolves @copybrief references.
//
// Attachment is purely positional: a leading comment documents the
// declaration whose lead-in starts right after it, a trailing comment
// documents the declaration that ends right before it. Overloads therefore
// pair with their comments by position, never by signature.
package correlate
