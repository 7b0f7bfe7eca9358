package components

import (
	"strconv"

	g "maragu.dev/gomponents"
	h "maragu.dev/gomponents/html"

	"github.com/goliatone/go-leadwizard/pkg/model"
)

func navBar(page model.Page) g.Node {
	return h.Nav(
		h.Class("lw-nav"),
		g.Attr("data-nav"),
		brand(page.Site),
		h.Ul(
			h.Class("lw-nav-links"),
			g.Map(page.Nav, func(link model.Link) g.Node {
				return h.Li(h.A(h.Href(link.Href), g.Text(link.Label)))
			}),
		),
		h.A(h.Class("lw-button lw-button-primary lw-nav-cta"), h.Href(page.NavCTA.Href), g.Text(page.NavCTA.Label)),
	)
}

func brand(site model.Site) g.Node {
	return h.A(
		h.Class("lw-brand"),
		h.Href("#top"),
		h.Span(h.Class("lw-monogram"), g.Attr("aria-hidden", "true"), g.Text(site.Monogram)),
		h.Span(h.Class("lw-brand-name"), g.Text(site.Name)),
	)
}

func (r *Renderer) hero(page model.Page, variant string) g.Node {
	hero := page.Hero
	typewriter := g.Group([]g.Node{
		h.Span(h.Class("lw-typewriter"), g.Attr("data-typewriter"), g.Attr("aria-live", "polite"), g.Text(page.Headline.Initial)),
		h.Span(h.Class("lw-caret"), g.Attr("aria-hidden", "true")),
	})
	metrics := metricList("lw-metric", hero.Metrics, r.revealAttrs)

	if variant == "paper" {
		return h.Section(
			h.Class("lw-hero lw-hero-paper"),
			h.Div(
				h.Class("lw-hero-inner lw-hero-columns"),
				h.Div(
					h.Class("lw-hero-copy"),
					h.Span(h.Class("lw-eyebrow"), r.revealAttrs(0), g.Text(hero.Badge)),
					h.H1(h.Class("lw-headline"), r.revealAttrs(1), g.Text(hero.Lead), h.Br(), typewriter),
					h.P(h.Class("lw-subheading"), r.revealAttrs(2), g.Text(hero.Subheading)),
					h.Div(
						h.Class("lw-actions"),
						r.revealAttrs(3),
						h.A(h.Class("lw-button lw-button-primary"), h.Href(hero.PrimaryCTA.Href), g.Text(hero.PrimaryCTA.Label)),
						h.A(h.Class("lw-link"), h.Href(hero.SecondaryCTA.Href), g.Text(hero.SecondaryCTA.Label+" →")),
					),
					h.P(h.Class("lw-note"), g.Text(hero.Note)),
				),
				h.Aside(
					h.Class("lw-hero-card"),
					r.revealAttrs(2),
					h.Dl(h.Class("lw-metrics lw-metrics-stacked"), metricList("lw-metric", hero.Metrics, func(int) g.Node { return nil })),
				),
			),
		)
	}

	return h.Section(
		h.Class("lw-hero"),
		h.Div(h.Class("lw-hero-grid"), g.Attr("aria-hidden", "true")),
		h.Div(
			h.Class("lw-hero-inner"),
			h.Span(
				h.Class("lw-badge"),
				r.revealAttrs(0),
				h.Span(h.Class("lw-pulse"), g.Attr("aria-hidden", "true")),
				g.Text(hero.Badge),
			),
			h.H1(
				h.Class("lw-headline"),
				r.revealAttrs(1),
				h.Span(h.Class("lw-headline-lead"), g.Text(hero.Lead)),
				typewriter,
			),
			h.P(h.Class("lw-subheading"), r.revealAttrs(2), g.Text(hero.Subheading)),
			h.P(h.Class("lw-note"), r.revealAttrs(3), g.Text(hero.Note)),
			h.Div(
				h.Class("lw-actions"),
				r.revealAttrs(4),
				h.A(h.Class("lw-button lw-button-primary"), h.Href(hero.PrimaryCTA.Href), g.Text(hero.PrimaryCTA.Label)),
				h.A(h.Class("lw-button lw-button-ghost"), h.Href(hero.SecondaryCTA.Href), g.Text(hero.SecondaryCTA.Label)),
			),
			h.Dl(h.Class("lw-metrics"), metrics),
		),
	)
}

func pains(items []string) g.Node {
	track := func(hidden bool) g.Node {
		return h.Ul(
			h.Class("lw-marquee-track"),
			g.If(hidden, g.Attr("aria-hidden", "true")),
			g.Map(items, func(pain string) g.Node { return h.Li(g.Text(pain)) }),
		)
	}
	return h.Section(
		h.Class("lw-pains"),
		g.Attr("aria-label", "Common problems"),
		h.Div(h.Class("lw-marquee"), track(false), track(true)),
	)
}

func (r *Renderer) products(section model.ProductsSection) g.Node {
	set := section.Tabs
	items := make([]g.Node, 0, len(set.Items))
	for i, product := range set.Items {
		items = append(items, panel(set.Active, i, "lw-product",
			itemColor(product.Color),
			h.Div(
				h.Class("lw-product-head"),
				icon(product.IconSVG),
				h.Div(
					h.H3(
						g.Text(product.Name),
						g.If(product.Badge != "", g.Group([]g.Node{g.Text(" "), h.Span(h.Class("lw-pill"), g.Text(product.Badge))})),
					),
					h.P(h.Class("lw-tagline"), g.Text(product.Tagline)),
				),
			),
			h.P(g.Text(product.Summary)),
			checklist(product.Features),
			h.P(h.Class("lw-callout"), g.Text(product.Metric)),
		))
	}
	return h.Section(
		h.Class("lw-section lw-products"),
		h.ID(section.Section.ID),
		sectionHeading(section.Section),
		tabList(set),
		h.Div(h.Class("lw-panels"), g.Attr("data-panels", set.Param), g.Group(items)),
	)
}

func (r *Renderer) solutions(section model.SolutionsSection) g.Node {
	set := section.Tabs
	items := make([]g.Node, 0, len(set.Items))
	for i, item := range set.Items {
		items = append(items, panel(set.Active, i, "lw-solution",
			h.Div(
				h.Class("lw-solution-text"),
				h.Span(h.Class("lw-emoji"), g.Attr("aria-hidden", "true"), g.Text(item.Role.Icon)),
				h.H3(g.Text(item.Role.Role)),
				h.P(h.Class("lw-problem"), h.Strong(g.Text("The problem:")), g.Text(" "+item.Role.Problem)),
				h.P(h.Class("lw-answer"), h.Strong(g.Text("Our answer:")), g.Text(" "+item.Role.Solution)),
			),
			h.Ul(
				h.Class("lw-recommended"),
				g.Map(item.Products, func(product model.Product) g.Node {
					return h.Li(
						itemColor(product.Color),
						icon(product.IconSVG),
						h.Span(h.Class("lw-recommended-name"), g.Text(product.Name)),
						h.Span(h.Class("lw-tagline"), g.Text(product.Tagline)),
					)
				}),
			),
		))
	}
	return h.Section(
		h.Class("lw-section lw-solutions"),
		h.ID(section.Section.ID),
		sectionHeading(section.Section),
		tabList(set),
		h.Div(h.Class("lw-panels"), g.Attr("data-panels", set.Param), g.Group(items)),
	)
}

func (r *Renderer) cases(section model.CasesSection) g.Node {
	set := section.Tabs
	items := make([]g.Node, 0, len(set.Items))
	for i, study := range set.Items {
		items = append(items, panel(set.Active, i, "lw-case",
			itemColor(study.Color),
			h.Span(h.Class("lw-pill"), g.Text(study.Industry)),
			h.H3(g.Text(study.Company)),
			h.P(h.Strong(g.Text("Challenge:")), g.Text(" "+study.Challenge)),
			h.P(h.Strong(g.Text("Solution:")), g.Text(" "+study.Solution)),
			h.Dl(h.Class("lw-results"), metricList("", study.Results, func(int) g.Node { return nil })),
		))
	}
	return h.Section(
		h.Class("lw-section lw-cases"),
		h.ID(section.Section.ID),
		sectionHeading(section.Section),
		tabList(set),
		h.Div(h.Class("lw-panels"), g.Attr("data-panels", set.Param), g.Group(items)),
	)
}

func (r *Renderer) trust(items []model.TrustItem) g.Node {
	nodes := make([]g.Node, 0, len(items))
	for i, item := range items {
		nodes = append(nodes, h.Li(r.revealAttrs(i), icon(item.IconSVG), g.Text(item.Text)))
	}
	return h.Section(
		h.Class("lw-trust"),
		g.Attr("aria-label", "Why clients trust us"),
		h.Ul(g.Group(nodes)),
	)
}

func (r *Renderer) pricing(page model.Page) g.Node {
	pricing := page.Pricing
	plans := make([]g.Node, 0, len(pricing.Plans))
	for i, plan := range pricing.Plans {
		class := "lw-plan"
		button := "lw-button"
		if plan.Highlight {
			class += " is-highlighted"
			button += " lw-button-primary"
		}
		plans = append(plans, h.Article(
			h.Class(class),
			itemColor(plan.Color),
			r.revealAttrs(i),
			g.If(plan.Highlight, h.Span(h.Class("lw-pill"), g.Text("Most Popular"))),
			h.H3(g.Text(plan.Name)),
			h.P(h.Class("lw-price"), h.Span(g.Text(plan.Price)), g.Text(" "), h.Small(g.Text(plan.Period))),
			h.P(g.Text(plan.Summary)),
			checklist(plan.Includes),
			h.A(h.Class(button), h.Href("#"+page.Wizard.Copy.Section.ID), g.Text(plan.CTA)),
		))
	}

	var note g.Node
	if pricing.Note != "" {
		note = h.P(
			h.Class("lw-pricing-note"),
			g.Text(pricing.Note+" "),
			g.If(pricing.NoteCTA.Href != "", h.A(h.Href(pricing.NoteCTA.Href), g.Text(pricing.NoteCTA.Label))),
		)
	}

	return h.Section(
		h.Class("lw-section lw-pricing"),
		h.ID(pricing.Section.ID),
		sectionHeading(pricing.Section),
		h.Div(h.Class("lw-plans"), g.Group(plans)),
		note,
	)
}

func checklist(lines []string) g.Node {
	return h.Ul(
		h.Class("lw-checklist"),
		g.Map(lines, func(line string) g.Node { return h.Li(g.Text(line)) }),
	)
}

func footer(page model.Page) g.Node {
	return h.Footer(
		h.Class("lw-footer"),
		h.Div(
			h.Class("lw-footer-brand"),
			brand(page.Site),
			h.P(g.Text(page.Footer.Tagline)),
			h.P(
				h.Class("lw-contact-line"),
				h.A(h.Href("mailto:"+page.Site.Email), g.Text(page.Site.Email)),
				g.Text(" · "+page.Site.Location),
			),
		),
		g.Map(page.Footer.Columns, func(column model.FooterColumn) g.Node {
			return h.Div(
				h.Class("lw-footer-column"),
				h.H4(g.Text(column.Label)),
				h.Ul(g.Map(column.Links, func(link model.Link) g.Node {
					return h.Li(h.A(h.Href(link.Href), g.Text(link.Label)))
				})),
			)
		}),
		h.Div(
			h.Class("lw-footer-base"),
			h.Span(g.Text("© "+strconv.Itoa(page.Site.Year)+" "+page.Footer.Copyright)),
			h.Span(g.Text(page.Footer.Credits)),
		),
	)
}
