// Package field describes the declared types of entity fields.
//
// Field types are the vocabulary shared by the schema loaders and the
// code generator. A schema file spells them the way Go does:
//
//	fields:
//	  - name: id
//	    type: int64
//	  - name: email
//	    type: string
//	  - name: created_at
//	    type: time.Time
//
// # Textual fields
//
// TypeString is the only textual type. Filter queries apply case-insensitive
// LIKE matching to textual fields only; every other type is compared with
// equality.
package field
