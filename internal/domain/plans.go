package domain

// Plan is a pricing tier shown on the public pricing page. Prices are
// whole US dollars per month.
type Plan struct {
	ID          string
	Name        string
	Monthly     int
	AnnualPerMo int
	Features    []string
	Highlighted bool
}

var Plans = []Plan{
	{
		ID:          "starter",
		Name:        "Starter",
		Monthly:     0,
		AnnualPerMo: 0,
		Features: []string{
			"Up to 50 contacts",
			"Telegram reminders",
			"Basic kanban board",
		},
	},
	{
		ID:          "professional",
		Name:        "Professional",
		Monthly:     9,
		AnnualPerMo: 7,
		Features: []string{
			"Unlimited contacts",
			"Telegram and email reminders",
			"Projects and templates",
			"Dashboard metrics",
		},
		Highlighted: true,
	},
	{
		ID:          "business",
		Name:        "Business",
		Monthly:     29,
		AnnualPerMo: 24,
		Features: []string{
			"Everything in Professional",
			"Team workspaces",
			"Priority support",
		},
	},
}

// Price returns the per-month price for the chosen billing period.
func (p Plan) Price(annual bool) int {
	if annual {
		return p.AnnualPerMo
	}
	return p.Monthly
}

// AnnualTotal is the amount billed once per year on annual billing.
func (p Plan) AnnualTotal() int {
	return p.AnnualPerMo * 12
}

// FindPlan looks a plan up by ID.
func FindPlan(id string) (Plan, bool) {
	for _, p := range Plans {
		if p.ID == id {
			return p, true
		}
	}
	return Plan{}, false
}
