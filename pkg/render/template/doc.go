// Package template defines the template engine seam used by the HTML
// renderers. Engines receive plain data (structs are converted through their
// JSON representation) so templates address fields by their JSON names.
package template
