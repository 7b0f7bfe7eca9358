package catalog

import (
	"errors"
	"fmt"
	"strings"

	"github.com/goliatone/go-leadwizard/pkg/model"
	"github.com/goliatone/go-leadwizard/pkg/typewriter"
	"github.com/goliatone/go-leadwizard/pkg/wizard"
)

// ErrInvalid wraps every validation failure reported by Validate.
var ErrInvalid = errors.New("catalog: invalid catalog")

// Catalog is the complete static content of the landing page.
type Catalog struct {
	Site      model.Site           `json:"site" yaml:"site"`
	Nav       []model.Link         `json:"nav" yaml:"nav"`
	NavCTA    model.Link           `json:"navCta" yaml:"navCta"`
	Hero      model.Hero           `json:"hero" yaml:"hero"`
	Pains     []string             `json:"pains" yaml:"pains"`
	Products  ProductsBlock        `json:"products" yaml:"products"`
	Solutions SolutionsBlock       `json:"solutions" yaml:"solutions"`
	Cases     CasesBlock           `json:"cases" yaml:"cases"`
	Trust     []model.TrustItem    `json:"trust" yaml:"trust"`
	Pricing   model.PricingSection `json:"pricing" yaml:"pricing"`
	Wizard    WizardBlock          `json:"wizard" yaml:"wizard"`
	Footer    model.Footer         `json:"footer" yaml:"footer"`
	Icons     map[string]string    `json:"icons" yaml:"icons"`

	// Source records where the catalog was loaded from.
	Source string `json:"-" yaml:"-"`
}

// ProductsBlock is the product showcase content.
type ProductsBlock struct {
	Section model.Section   `json:"section" yaml:"section"`
	Items   []model.Product `json:"items" yaml:"items"`
}

// SolutionsBlock is the solution finder content.
type SolutionsBlock struct {
	Section model.Section `json:"section" yaml:"section"`
	Roles   []model.Role  `json:"roles" yaml:"roles"`
}

// CasesBlock is the case study content.
type CasesBlock struct {
	Section model.Section     `json:"section" yaml:"section"`
	Items   []model.CaseStudy `json:"items" yaml:"items"`
}

// FieldSpec describes one contact input.
type FieldSpec struct {
	Name        string `json:"name" yaml:"name"`
	Type        string `json:"type" yaml:"type"`
	Placeholder string `json:"placeholder" yaml:"placeholder"`
}

// WizardBlock holds the qualification questions and the surrounding copy.
type WizardBlock struct {
	Copy   model.WizardCopy `json:"copy" yaml:"copy"`
	Fields []FieldSpec      `json:"fields" yaml:"fields"`
	Steps  []model.Step     `json:"steps" yaml:"steps"`
}

// Validate checks cross references and required content.
func (c *Catalog) Validate() error {
	if c == nil {
		return fmt.Errorf("%w: catalog is nil", ErrInvalid)
	}
	if strings.TrimSpace(c.Site.Name) == "" {
		return fmt.Errorf("%w: site.name is required", ErrInvalid)
	}
	if _, err := typewriter.New(c.Hero.Phrases); err != nil {
		return fmt.Errorf("%w: hero.phrases: %w", ErrInvalid, err)
	}
	if err := wizard.ValidateSteps(c.Wizard.Steps); err != nil {
		return fmt.Errorf("%w: wizard.steps: %w", ErrInvalid, err)
	}
	for _, spec := range c.Wizard.Fields {
		if _, err := wizard.ParseField(spec.Name); err != nil {
			return fmt.Errorf("%w: wizard.fields: %w", ErrInvalid, err)
		}
	}

	if len(c.Products.Items) == 0 {
		return fmt.Errorf("%w: at least one product is required", ErrInvalid)
	}
	products := make(map[string]struct{}, len(c.Products.Items))
	for i, product := range c.Products.Items {
		name := strings.TrimSpace(product.Name)
		if name == "" {
			return fmt.Errorf("%w: products.items[%d]: name is required", ErrInvalid, i)
		}
		if _, dup := products[name]; dup {
			return fmt.Errorf("%w: duplicate product %q", ErrInvalid, name)
		}
		products[name] = struct{}{}
		if err := c.checkIcon(product.Icon); err != nil {
			return fmt.Errorf("%w: product %q: %w", ErrInvalid, name, err)
		}
	}

	if len(c.Solutions.Roles) == 0 {
		return fmt.Errorf("%w: at least one role is required", ErrInvalid)
	}
	for _, role := range c.Solutions.Roles {
		for _, ref := range role.Products {
			if _, ok := products[ref]; !ok {
				return fmt.Errorf("%w: role %q references unknown product %q", ErrInvalid, role.Role, ref)
			}
		}
	}
	if len(c.Cases.Items) == 0 {
		return fmt.Errorf("%w: at least one case study is required", ErrInvalid)
	}
	for _, item := range c.Trust {
		if err := c.checkIcon(item.Icon); err != nil {
			return fmt.Errorf("%w: trust %q: %w", ErrInvalid, item.Text, err)
		}
	}
	return nil
}

func (c *Catalog) checkIcon(name string) error {
	if name == "" {
		return nil
	}
	if _, ok := c.Icons[name]; !ok {
		return fmt.Errorf("unknown icon %q", name)
	}
	return nil
}

// Product returns the product named name.
func (c *Catalog) Product(name string) (model.Product, bool) {
	for _, product := range c.Products.Items {
		if product.Name == name {
			return product, true
		}
	}
	return model.Product{}, false
}

// Recommended resolves a role's product names.
func (c *Catalog) Recommended(role model.Role) []model.Product {
	out := make([]model.Product, 0, len(role.Products))
	for _, name := range role.Products {
		if product, ok := c.Product(name); ok {
			out = append(out, product)
		}
	}
	return out
}

// Icon returns sanitised SVG markup for name.
func (c *Catalog) Icon(name string) string {
	return c.Icons[name]
}

// FooterColumns prefixes the configured footer columns with generated
// Products and Solutions columns linking to their sections.
func (c *Catalog) FooterColumns() []model.FooterColumn {
	productLinks := make([]model.Link, 0, len(c.Products.Items))
	for _, product := range c.Products.Items {
		productLinks = append(productLinks, model.Link{Label: product.Name, Href: "#" + sectionID(c.Products.Section, "products")})
	}
	roleLinks := make([]model.Link, 0, len(c.Solutions.Roles))
	for _, role := range c.Solutions.Roles {
		roleLinks = append(roleLinks, model.Link{Label: role.Role, Href: "#" + sectionID(c.Solutions.Section, "solutions")})
	}

	columns := []model.FooterColumn{
		{Label: "Products", Links: productLinks},
		{Label: "Solutions", Links: roleLinks},
	}
	return append(columns, c.Footer.Columns...)
}

func sectionID(section model.Section, fallback string) string {
	if section.ID != "" {
		return section.ID
	}
	return fallback
}
