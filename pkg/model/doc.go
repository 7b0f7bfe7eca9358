// Package model defines the typed values shared by the wizard, the content
// catalog and the renderers: question steps, collected answers, contact
// details, the wizard state, the lead payload handed to external
// collaborators, and the page model renderers consume. The types carry json
// and yaml tags so catalog files and API payloads decode straight into them.
package model
