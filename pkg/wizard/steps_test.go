package wizard

import "github.com/goliatone/go-leadwizard/pkg/model"

func qualificationSteps() []model.Step {
	return []model.Step{
		{
			Title:   "What's your role?",
			Key:     "role",
			Options: []string{"CEO / Founder", "CTO / Technical Lead", "Operations Manager", "Sales / Marketing Lead", "Other Executive"},
		},
		{
			Title:   "What's your biggest challenge?",
			Key:     "challenge",
			Options: []string{"Too many manual processes slowing us down", "Can't find or afford good engineers", "Our software is outdated and hard to maintain", "We want AI but don't know where to start"},
		},
		{
			Title:   "How big is your team?",
			Key:     "size",
			Options: []string{"1–10 people", "11–50 people", "51–200 people", "200+ people"},
		},
		{
			Title:   "When do you need results?",
			Key:     "timeline",
			Options: []string{"ASAP (within weeks)", "This quarter", "Next 6 months", "Just exploring"},
		},
	}
}
