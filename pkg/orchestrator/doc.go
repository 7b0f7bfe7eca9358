// Package orchestrator assembles the landing page model from the catalog, a
// wizard snapshot and the visitor's tab selection, resolves the theme and
// hands the result to a registered renderer.
package orchestrator
