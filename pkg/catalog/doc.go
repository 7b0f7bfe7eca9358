// Package catalog loads the landing page content: brand metadata, hero copy
// and typewriter phrases, the product, role, case study and pricing data, and
// the qualification wizard steps. A default catalog is embedded; deployments
// can point at their own YAML or JSON file.
package catalog
