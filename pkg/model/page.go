package model

// Site carries brand and document-level metadata.
type Site struct {
	Name        string `json:"name" yaml:"name"`
	Accent      string `json:"accent" yaml:"accent"`
	Monogram    string `json:"monogram" yaml:"monogram"`
	Title       string `json:"title" yaml:"title"`
	Description string `json:"description" yaml:"description"`
	Email       string `json:"email" yaml:"email"`
	GitHub      string `json:"github" yaml:"github"`
	Location    string `json:"location" yaml:"location"`
	Year        int    `json:"year,omitempty" yaml:"-"`
	BasePath    string `json:"basePath,omitempty" yaml:"-"`
	AssetsPath  string `json:"assetsPath,omitempty" yaml:"-"`
}

// Section is the eyebrow/title/intro block heading each page section.
type Section struct {
	ID        string `json:"id" yaml:"id"`
	Eyebrow   string `json:"eyebrow" yaml:"eyebrow"`
	Title     string `json:"title" yaml:"title"`
	Highlight string `json:"highlight" yaml:"highlight"`
	Intro     string `json:"intro" yaml:"intro"`
}

// Hero is the above-the-fold content.
type Hero struct {
	Badge        string   `json:"badge" yaml:"badge"`
	Lead         string   `json:"lead" yaml:"lead"`
	Phrases      []string `json:"phrases" yaml:"phrases"`
	Subheading   string   `json:"subheading" yaml:"subheading"`
	Note         string   `json:"note" yaml:"note"`
	PrimaryCTA   Link     `json:"primaryCta" yaml:"primaryCta"`
	SecondaryCTA Link     `json:"secondaryCta" yaml:"secondaryCta"`
	Metrics      []Metric `json:"metrics" yaml:"metrics"`
}

// Headline configures the client-side typewriter with the same timings the
// Go presenter uses.
type Headline struct {
	Phrases      []string `json:"phrases"`
	Initial      string   `json:"initial"`
	TypeMillis   int64    `json:"typeMs"`
	DeleteMillis int64    `json:"deleteMs"`
	DwellMillis  int64    `json:"dwellMs"`
}

// Tab is a rendered tab button.
type Tab struct {
	Index  int    `json:"index"`
	Label  string `json:"label"`
	Href   string `json:"href"`
	Active bool   `json:"active"`
}

// TabSet is a tabbed panel with one active entry.
type TabSet[T any] struct {
	Param   string `json:"param"`
	Items   []T    `json:"items"`
	Active  int    `json:"active"`
	Current T      `json:"current"`
	Tabs    []Tab  `json:"tabs"`
}

// RolePanel pairs a persona with its resolved product recommendations.
type RolePanel struct {
	Role     Role      `json:"role"`
	Products []Product `json:"products"`
}

// OptionView is a selectable wizard option.
type OptionView struct {
	Index    int    `json:"index"`
	Label    string `json:"label"`
	Selected bool   `json:"selected"`
}

// FieldView is a contact input with its current value and inline errors.
type FieldView struct {
	Name        string   `json:"name"`
	Type        string   `json:"type"`
	Placeholder string   `json:"placeholder"`
	Value       string   `json:"value"`
	Errors      []string `json:"errors,omitempty"`
}

// AnswerView is a question/answer pair shown after submission.
type AnswerView struct {
	Title string `json:"title"`
	Value string `json:"value"`
}

// WizardCopy holds the static text around the wizard.
type WizardCopy struct {
	Section      Section `json:"section" yaml:"section"`
	ContactTitle string  `json:"contactTitle" yaml:"contactTitle"`
	ContactIntro string  `json:"contactIntro" yaml:"contactIntro"`
	SubmitLabel  string  `json:"submitLabel" yaml:"submitLabel"`
	Disclaimer   string  `json:"disclaimer" yaml:"disclaimer"`
	BackLabel    string  `json:"backLabel" yaml:"backLabel"`
	SuccessTitle string  `json:"successTitle" yaml:"successTitle"`
	SuccessBody  string  `json:"successBody" yaml:"successBody"`
}

// WizardView is a render-ready snapshot of a wizard.
type WizardView struct {
	Copy       WizardCopy   `json:"copy"`
	Phase      Phase        `json:"phase"`
	PhaseName  string       `json:"phaseName"`
	Session    string       `json:"session,omitempty"`
	Action     string       `json:"action"`
	StepNumber int          `json:"stepNumber"`
	StepCount  int          `json:"stepCount"`
	Step       Step         `json:"step"`
	Steps      []Step       `json:"steps,omitempty"`
	AdvanceMs  int64        `json:"advanceMs"`
	Options    []OptionView `json:"options"`
	Progress   []bool       `json:"progress"`
	CanGoBack  bool         `json:"canGoBack"`
	Fields     []FieldView  `json:"fields"`
	FormErrors []string     `json:"formErrors,omitempty"`
	Summary    []AnswerView `json:"summary,omitempty"`
}

// Footer is the page footer.
type Footer struct {
	Tagline   string         `json:"tagline" yaml:"tagline"`
	Columns   []FooterColumn `json:"columns" yaml:"columns"`
	Copyright string         `json:"copyright" yaml:"copyright"`
	Credits   string         `json:"credits" yaml:"credits"`
}

// Page is the complete landing page model renderers consume.
type Page struct {
	Site      Site              `json:"site"`
	Nav       []Link            `json:"nav"`
	NavCTA    Link              `json:"navCta"`
	Hero      Hero              `json:"hero"`
	Headline  Headline          `json:"headline"`
	Pains     []string          `json:"pains"`
	Products  ProductsSection   `json:"products"`
	Solutions SolutionsSection  `json:"solutions"`
	Cases     CasesSection      `json:"cases"`
	Trust     []TrustItem       `json:"trust"`
	Pricing   PricingSection    `json:"pricing"`
	Wizard    WizardView        `json:"wizard"`
	Footer    Footer            `json:"footer"`
	Reveal    map[string]string `json:"reveal,omitempty"`
	Meta      map[string]string `json:"meta,omitempty"`
}

// ProductsSection is the product showcase.
type ProductsSection struct {
	Section Section         `json:"section"`
	Tabs    TabSet[Product] `json:"tabs"`
}

// SolutionsSection is the role-based solution finder.
type SolutionsSection struct {
	Section Section           `json:"section"`
	Tabs    TabSet[RolePanel] `json:"tabs"`
}

// CasesSection lists case studies.
type CasesSection struct {
	Section Section           `json:"section"`
	Tabs    TabSet[CaseStudy] `json:"tabs"`
}

// PricingSection lists pricing tiers.
type PricingSection struct {
	Section Section `json:"section" yaml:"section"`
	Plans   []Plan  `json:"plans" yaml:"plans"`
	Note    string  `json:"note" yaml:"note"`
	NoteCTA Link    `json:"noteCta" yaml:"noteCta"`
}
