package model

// Link is a labelled navigation target.
type Link struct {
	Label string `json:"label" yaml:"label"`
	Href  string `json:"href" yaml:"href"`
}

// Metric is a headline figure such as "10x / Faster than in-house".
type Metric struct {
	Value string `json:"value" yaml:"value"`
	Label string `json:"label" yaml:"label"`
}

// Product is one entry in the product showcase tabs.
type Product struct {
	Name     string   `json:"name" yaml:"name"`
	Tagline  string   `json:"tagline" yaml:"tagline"`
	Color    string   `json:"color" yaml:"color"`
	Badge    string   `json:"badge,omitempty" yaml:"badge"`
	Icon     string   `json:"icon,omitempty" yaml:"icon"`
	IconSVG  string   `json:"iconSvg,omitempty" yaml:"-"`
	Summary  string   `json:"summary" yaml:"summary"`
	Features []string `json:"features" yaml:"features"`
	Metric   string   `json:"metric" yaml:"metric"`
}

// Role is a persona in the solution finder. Products lists product names
// recommended for the persona.
type Role struct {
	Role     string   `json:"role" yaml:"role"`
	Icon     string   `json:"icon" yaml:"icon"`
	Problem  string   `json:"problem" yaml:"problem"`
	Solution string   `json:"solution" yaml:"solution"`
	Products []string `json:"products" yaml:"products"`
}

// CaseStudy summarises a client engagement.
type CaseStudy struct {
	Company   string   `json:"company" yaml:"company"`
	Industry  string   `json:"industry" yaml:"industry"`
	Color     string   `json:"color" yaml:"color"`
	Challenge string   `json:"challenge" yaml:"challenge"`
	Solution  string   `json:"solution" yaml:"solution"`
	Results   []Metric `json:"results" yaml:"results"`
}

// TrustItem is a short credibility badge.
type TrustItem struct {
	Icon    string `json:"icon,omitempty" yaml:"icon"`
	IconSVG string `json:"iconSvg,omitempty" yaml:"-"`
	Text    string `json:"text" yaml:"text"`
}

// Plan is a pricing tier.
type Plan struct {
	Name      string   `json:"name" yaml:"name"`
	Price     string   `json:"price" yaml:"price"`
	Period    string   `json:"period" yaml:"period"`
	Color     string   `json:"color" yaml:"color"`
	Highlight bool     `json:"highlight" yaml:"highlight"`
	Summary   string   `json:"summary" yaml:"summary"`
	Includes  []string `json:"includes" yaml:"includes"`
	CTA       string   `json:"cta" yaml:"cta"`
}

// FooterColumn groups footer links under a heading.
type FooterColumn struct {
	Label string `json:"label" yaml:"label"`
	Links []Link `json:"links" yaml:"links"`
}
