package orchestrator

import (
	"context"
	"errors"
	"fmt"
	"net/url"
	"strings"

	"github.com/goliatone/go-leadwizard/pkg/model"
	"github.com/goliatone/go-leadwizard/pkg/render"
	"github.com/goliatone/go-leadwizard/pkg/tabs"
	"github.com/goliatone/go-leadwizard/pkg/wizard"
)

// Query parameters selecting the active tabs.
const (
	ParamProduct = "product"
	ParamRole    = "role"
	ParamCase    = "case"
)

// Messages shown above the contact form for failures that are not tied to a
// field.
const (
	MessageDeliveryFailed = "We couldn't send your details. Please try again."
	MessageStale          = "That answer no longer applies. Please pick again."
)

// Notice is an error whose text is shown to the visitor unchanged above the
// contact form.
type Notice string

func (n Notice) Error() string {
	return string(n)
}

// Selection names the active tab of each tabbed section, either by
// zero-based index or by label slug. Unknown values keep the first tab.
type Selection struct {
	Product string
	Role    string
	Case    string
}

// SelectionFromQuery reads a Selection from URL query values.
func SelectionFromQuery(values url.Values) Selection {
	return Selection{
		Product: values.Get(ParamProduct),
		Role:    values.Get(ParamRole),
		Case:    values.Get(ParamCase),
	}
}

func (s Selection) values() url.Values {
	values := url.Values{}
	if s.Product != "" {
		values.Set(ParamProduct, s.Product)
	}
	if s.Role != "" {
		values.Set(ParamRole, s.Role)
	}
	if s.Case != "" {
		values.Set(ParamCase, s.Case)
	}
	return values
}

// BuildPage assembles the render-ready page model for req.
func (o *Orchestrator) BuildPage(ctx context.Context, req Request) (model.Page, error) {
	if err := o.initialiseErr; err != nil {
		return model.Page{}, err
	}
	cat := o.catalog

	site := cat.Site
	site.Year = o.now().Year()
	site.BasePath = o.basePath

	products, err := buildTabs(cat.Products.Items, ParamProduct, req.Selection, cat.Products.Section.ID,
		func(p model.Product) string { return p.Name })
	if err != nil {
		return model.Page{}, err
	}

	panels := make([]model.RolePanel, 0, len(cat.Solutions.Roles))
	for _, role := range cat.Solutions.Roles {
		panels = append(panels, model.RolePanel{Role: role, Products: cat.Recommended(role)})
	}
	roles, err := buildTabs(panels, ParamRole, req.Selection, cat.Solutions.Section.ID,
		func(p model.RolePanel) string { return p.Role.Role })
	if err != nil {
		return model.Page{}, err
	}

	cases, err := buildTabs(cat.Cases.Items, ParamCase, req.Selection, cat.Cases.Section.ID,
		func(c model.CaseStudy) string { return c.Company })
	if err != nil {
		return model.Page{}, err
	}

	footer := cat.Footer
	footer.Columns = cat.FooterColumns()

	page := model.Page{
		Site:      site,
		Nav:       append([]model.Link(nil), cat.Nav...),
		NavCTA:    cat.NavCTA,
		Hero:      cat.Hero,
		Headline:  o.headline(cat.Hero.Phrases),
		Pains:     append([]string(nil), cat.Pains...),
		Products:  model.ProductsSection{Section: cat.Products.Section, Tabs: products},
		Solutions: model.SolutionsSection{Section: cat.Solutions.Section, Tabs: roles},
		Cases:     model.CasesSection{Section: cat.Cases.Section, Tabs: cases},
		Trust:     append([]model.TrustItem(nil), cat.Trust...),
		Pricing:   cat.Pricing,
		Wizard:    o.wizardView(req),
		Footer:    footer,
		Reveal:    o.reveal.Config(),
	}
	if len(req.Meta) > 0 {
		page.Meta = make(map[string]string, len(req.Meta))
		for key, value := range req.Meta {
			page.Meta[key] = value
		}
	}

	for _, t := range o.transformers {
		if err := t.Transform(ctx, &page); err != nil {
			return model.Page{}, fmt.Errorf("orchestrator: transform page: %w", err)
		}
	}
	return page, nil
}

func buildTabs[T any](items []T, param string, sel Selection, sectionID string, label func(T) string) (model.TabSet[T], error) {
	switcher, err := tabs.New(items)
	if err != nil {
		return model.TabSet[T]{}, fmt.Errorf("orchestrator: %s tabs: %w", param, err)
	}
	values := sel.values()
	// Unknown selections keep the first tab.
	_ = switcher.SelectParam(values.Get(param), label)

	set := model.TabSet[T]{
		Param:   param,
		Items:   switcher.Items(),
		Active:  switcher.Index(),
		Current: switcher.Active(),
		Tabs:    make([]model.Tab, 0, switcher.Len()),
	}
	for i, item := range set.Items {
		text := label(item)
		query := sel.values()
		query.Set(param, tabs.Slug(text))
		href := "?" + query.Encode()
		if sectionID != "" {
			href += "#" + sectionID
		}
		set.Tabs = append(set.Tabs, model.Tab{
			Index:  i,
			Label:  text,
			Href:   href,
			Active: i == set.Active,
		})
	}
	return set, nil
}

func (o *Orchestrator) headline(phrases []string) model.Headline {
	headline := model.Headline{
		Phrases:      append([]string(nil), phrases...),
		TypeMillis:   o.timings.Type.Milliseconds(),
		DeleteMillis: o.timings.Delete.Milliseconds(),
		DwellMillis:  o.timings.Dwell.Milliseconds(),
	}
	if len(phrases) > 0 {
		headline.Initial = phrases[0]
	}
	return headline
}

func (o *Orchestrator) wizardView(req Request) model.WizardView {
	cat := o.catalog

	var snap wizard.Snapshot
	static := req.Wizard == nil
	if static {
		steps := cat.Wizard.Steps
		snap = wizard.Snapshot{
			State:   model.State{Phase: model.PhaseInProgress},
			Step:    steps[0],
			Steps:   steps,
			Answers: model.Answers{},
		}
	} else {
		snap = req.Wizard.Snapshot()
	}

	phase := snap.State.Phase
	index := snap.State.StepIndex
	view := model.WizardView{
		Copy:       cat.Wizard.Copy,
		Phase:      phase,
		PhaseName:  phase.String(),
		Session:    snap.Session,
		Action:     o.prefix(req.Action),
		StepNumber: index + 1,
		StepCount:  len(snap.Steps),
		Step:       snap.Step,
		AdvanceMs:  o.advanceDelay.Milliseconds(),
		CanGoBack:  phase == model.PhaseInProgress && index > 0,
		Progress:   make([]bool, len(snap.Steps)),
	}
	if static {
		view.Steps = snap.Steps
	}
	for i := range view.Progress {
		view.Progress[i] = phase != model.PhaseInProgress || i <= index
	}
	for i, option := range snap.Step.Options {
		view.Options = append(view.Options, model.OptionView{
			Index:    i,
			Label:    option,
			Selected: snap.Answers[snap.Step.Key] == option,
		})
	}

	mapping := errorMapping(req.Err)
	for _, spec := range cat.Wizard.Fields {
		view.Fields = append(view.Fields, model.FieldView{
			Name:        spec.Name,
			Type:        spec.Type,
			Placeholder: spec.Placeholder,
			Value:       contactValue(snap.Contact, spec.Name),
			Errors:      mapping.Fields[spec.Name],
		})
	}
	view.FormErrors = mapping.Form

	if phase == model.PhaseSubmitted {
		for _, step := range snap.Steps {
			view.Summary = append(view.Summary, model.AnswerView{Title: step.Title, Value: snap.Answers[step.Key]})
		}
	}
	return view
}

func errorMapping(err error) render.ErrorMapping {
	if err == nil {
		return render.ErrorMapping{}
	}
	var verr *wizard.ValidationError
	var notice Notice
	switch {
	case errors.As(err, &notice):
		return render.ErrorMapping{Form: render.MergeFormErrors(nil, notice.Error())}
	case errors.As(err, &verr):
		names := make([]string, 0, len(wizard.Fields()))
		for _, field := range wizard.Fields() {
			names = append(names, string(field))
		}
		return render.MapErrorPayload(names, verr.FieldMessages())
	case errors.Is(err, wizard.ErrDelivery):
		return render.ErrorMapping{Form: render.MergeFormErrors(nil, MessageDeliveryFailed)}
	case errors.Is(err, wizard.ErrInvalidChoice), errors.Is(err, wizard.ErrInvalidTransition), errors.Is(err, wizard.ErrClosed):
		return render.ErrorMapping{Form: render.MergeFormErrors(nil, MessageStale)}
	default:
		return render.ErrorMapping{Form: render.MergeFormErrors(nil, err.Error())}
	}
}

func contactValue(info model.ContactInfo, name string) string {
	switch wizard.Field(name) {
	case wizard.FieldName:
		return info.Name
	case wizard.FieldCompany:
		return info.Company
	case wizard.FieldEmail:
		return info.Email
	default:
		return ""
	}
}

func (o *Orchestrator) prefix(action string) string {
	if action == "" || o.basePath == "" || !strings.HasPrefix(action, "/") || strings.HasPrefix(action, o.basePath+"/") {
		return action
	}
	return o.basePath + action
}

func normalizeBasePath(basePath string) string {
	basePath = strings.TrimSpace(basePath)
	basePath = strings.TrimRight(basePath, "/")
	if basePath == "" {
		return ""
	}
	if !strings.HasPrefix(basePath, "/") {
		basePath = "/" + basePath
	}
	return basePath
}
