package components

import (
	"sort"
	"strconv"

	g "maragu.dev/gomponents"
	h "maragu.dev/gomponents/html"

	"github.com/goliatone/go-leadwizard/pkg/model"
	"github.com/goliatone/go-leadwizard/pkg/render"
	"github.com/goliatone/go-leadwizard/pkg/themes"
)

func (r *Renderer) document(page model.Page, view render.ThemeView, config string) g.Node {
	return g.Group([]g.Node{
		g.Raw("<!DOCTYPE html>"),
		h.HTML(
			h.Lang("en"),
			g.Attr("data-theme", view.Name),
			g.Attr("data-variant", view.Variant),
			g.If(view.Style != "", g.Attr("style", view.Style)),
			h.Head(
				h.Meta(h.Charset("utf-8")),
				h.Meta(h.Name("viewport"), h.Content("width=device-width, initial-scale=1")),
				h.TitleEl(g.Text(page.Site.Title)),
				h.Meta(h.Name("description"), h.Content(page.Site.Description)),
				metaTags(page.Meta),
				stylesheet(view.Asset(themes.AssetStylesheet)),
				stylesheet(view.Asset(themes.AssetVariant)),
			),
			h.Body(
				h.Class("lw-body lw-variant-"+view.Variant),
				navBar(page),
				h.Main(
					h.ID("top"),
					r.hero(page, view.Variant),
					pains(page.Pains),
					r.products(page.Products),
					r.solutions(page.Solutions),
					r.cases(page.Cases),
					r.trust(page.Trust),
					r.pricing(page),
					r.wizardSection(page),
				),
				footer(page),
				h.Script(h.Type("application/json"), h.ID("leadwizard-config"), g.Raw(config)),
				g.If(view.Asset(themes.AssetRuntime) != "",
					h.Script(h.Src(view.Asset(themes.AssetRuntime)), h.Defer()),
				),
			),
		),
	})
}

func metaTags(meta map[string]string) g.Node {
	keys := make([]string, 0, len(meta))
	for key := range meta {
		keys = append(keys, key)
	}
	sort.Strings(keys)
	nodes := make([]g.Node, 0, len(keys))
	for _, key := range keys {
		nodes = append(nodes, h.Meta(h.Name(key), h.Content(meta[key])))
	}
	return g.Group(nodes)
}

func stylesheet(href string) g.Node {
	if href == "" {
		return nil
	}
	return h.Link(h.Rel("stylesheet"), h.Href(href))
}

// revealAttrs marks an element for reveal-on-view, staggered by index.
func (r *Renderer) revealAttrs(index int) g.Node {
	attrs := r.reveal.Attrs(r.reveal.Delay(index))
	keys := make([]string, 0, len(attrs))
	for key := range attrs {
		keys = append(keys, key)
	}
	sort.Strings(keys)
	nodes := make([]g.Node, 0, len(keys))
	for _, key := range keys {
		if attrs[key] == "" {
			nodes = append(nodes, g.Attr(key))
			continue
		}
		nodes = append(nodes, g.Attr(key, attrs[key]))
	}
	return g.Group(nodes)
}

func itemColor(color string) g.Node {
	if color == "" {
		return nil
	}
	return g.Attr("style", "--item-color: "+color)
}

func sectionHeading(section model.Section) g.Node {
	return h.Header(
		h.Class("lw-section-heading"),
		g.Attr("data-reveal"),
		h.Span(h.Class("lw-eyebrow"), g.Text(section.Eyebrow)),
		h.H2(
			g.Text(section.Title+" "),
			h.Span(h.Class("lw-gradient"), g.Text(section.Highlight)),
		),
		g.If(section.Intro != "", h.P(h.Class("lw-intro"), g.Text(section.Intro))),
	)
}

func tabList[T any](set model.TabSet[T]) g.Node {
	return h.Div(
		h.Class("lw-tabs"),
		h.Role("tablist"),
		g.Attr("data-tabs", set.Param),
		g.Map(set.Tabs, func(tab model.Tab) g.Node {
			selected := "false"
			class := "lw-tab"
			if tab.Active {
				selected = "true"
				class += " is-active"
			}
			return h.A(
				h.Class(class),
				h.Role("tab"),
				h.Href(tab.Href),
				g.Attr("aria-selected", selected),
				g.Attr("data-tab-index", strconv.Itoa(tab.Index)),
				g.Text(tab.Label),
			)
		}),
	)
}

func panel(set int, index int, class string, children ...g.Node) g.Node {
	return h.Article(
		h.Class("lw-panel "+class),
		h.Role("tabpanel"),
		g.Attr("data-panel-index", strconv.Itoa(index)),
		g.If(index != set, g.Attr("hidden")),
		g.Group(children),
	)
}

func icon(svg string) g.Node {
	if svg == "" {
		return nil
	}
	// svg was sanitised when the catalog loaded.
	return h.Span(h.Class("lw-icon"), g.Raw(svg))
}

func metricList(class string, metrics []model.Metric, item func(int) g.Node) g.Node {
	nodes := make([]g.Node, 0, len(metrics))
	for i, metric := range metrics {
		nodes = append(nodes, h.Div(
			g.If(class != "", h.Class(class)),
			item(i),
			h.Dt(g.Text(metric.Value)),
			h.Dd(g.Text(metric.Label)),
		))
	}
	return g.Group(nodes)
}
