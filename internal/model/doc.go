// Package model holds the published entity model of one translation unit:
// an arena of entities, one per declaration record plus synthesized scopes,
// each carrying its attached comment and interpreted documentation.
//
// A Model is built with a Builder and never modified after Publish, so any
// number of goroutines may read it.
package model
