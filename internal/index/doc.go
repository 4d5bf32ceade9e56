// Package index exports correlated models as the JSON documentation index
// consumed by the Markdown generator: a tree of documented entities with
// their definitions, locations, groups and parsed descriptions.
package index
