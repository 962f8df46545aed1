package catalog

import (
	"errors"
	"fmt"

	"salesnav/models"
)

// ErrUnknownService is returned for ids that are not in the catalog.
var ErrUnknownService = errors.New("unknown service")

// TestPackageID is the low-value package used to exercise the checkout end to end.
const TestPackageID = "rectest"

// Services returns the catalog tailored to the given answers. Some reasons and
// priorities depend on what the client said during discovery.
func Services(a models.AnswerSet) []models.Service {
	return []models.Service{
		{
			ID: "w001", Name: "Automated Appointment Booking", SetupFee: 400, MonthlyFee: 100,
			Priority: models.PriorityHigh, Description: "Never miss a booking opportunity",
			Reason: pick(a.Text("leadHandling") == "Yes, frequently",
				"solve your problem of missed calls and slow response time",
				"automate your booking process"),
		},
		{
			ID: "w002", Name: "Lead Nurturing & Education Sequence", SetupFee: 500, MonthlyFee: 100,
			Priority: models.PriorityHigh, Description: "Build trust automatically",
			Reason: pick(a.Contains("mainFrustration", "Leads not converting"),
				"improve your lead conversion rate",
				"nurture leads automatically"),
		},
		{
			ID: "w003", Name: "Professional Services Sales Pipeline", SetupFee: 600, MonthlyFee: 200,
			Priority: models.PriorityHigh, Description: "Complete sales management",
			Reason: pick(a.Contains("holdingBack", "No clear sales process"),
				"establish a clear sales process",
				"manage your sales pipeline"),
		},
		{
			ID: "w004", Name: "Appointment Reminder System", SetupFee: 250, MonthlyFee: 50,
			Priority: models.PriorityMedium, Description: "Reduce no-shows",
			Reason: "reduce appointment no-shows and improve attendance",
		},
		{
			ID: "w005", Name: "Automated Review Requests", SetupFee: 300, MonthlyFee: 50,
			Priority: models.PriorityMedium, Description: "Build your reputation",
			Reason: "build your online reputation with more reviews",
		},
		{
			ID: "w006", Name: "Proposal & Signature Automation", SetupFee: 350, MonthlyFee: 100,
			Priority: models.PriorityMedium, Description: "Close deals faster",
			Reason: "speed up your sales closing process",
		},
		{
			ID: "w008", Name: "Referral Generation System", SetupFee: 300, MonthlyFee: 100,
			Priority: models.PriorityLow, Description: "Grow through referrals",
			Reason: "generate more referrals from happy clients",
		},
		{
			ID: "w009", Name: "Professional Website Build", SetupFee: 1200, MonthlyFee: 300,
			Priority:    pick(a.Contains("hasWebsite", "No"), models.PriorityHigh, models.PriorityLow),
			Description: "Custom website design and development",
			Reason: pick(a.Contains("hasWebsite", "No"),
				"establish your online presence with a professional website",
				"upgrade your existing website"),
		},
		{
			ID: "w010", Name: "Sales Funnel with Payment Portal", SetupFee: 1600, MonthlyFee: 400,
			Priority:    pick(a.Contains("websiteInterest", "sales funnel"), models.PriorityHigh, models.PriorityMedium),
			Description: "Complete funnel with payment processing",
			Reason: pick(a.Contains("websiteInterest", "payment processing"),
				"enable online payments and automate your sales funnel",
				"create a high-converting sales funnel"),
		},
		{
			ID: "w011", Name: "Domain Setup & Configuration", SetupFee: 150, MonthlyFee: 0,
			Priority:    pick(a.Contains("hasDomain", "No"), models.PriorityHigh, models.PriorityLow),
			Description: "Domain registration and DNS setup",
			Reason: pick(a.Contains("hasDomain", "No"),
				"get your domain name set up properly",
				"configure your existing domain"),
		},
		{
			ID: "w012", Name: "Social Media Lead Tracking & Attribution", SetupFee: 350, MonthlyFee: 75,
			Priority: models.PriorityMedium, Description: "Track which social media posts generate leads",
			Reason: "identify your best-performing social media campaigns and optimize your marketing",
		},
		{
			ID: "w013", Name: "Social Media Scheduling & Management", SetupFee: 400, MonthlyFee: 150,
			Priority: models.PriorityMedium, Description: "Schedule posts across all your social platforms",
			Reason: "maintain consistent social media presence and save time on posting",
		},
		{
			ID: "w014", Name: "Social Media Complete Package", SetupFee: 650, MonthlyFee: 200,
			Priority: models.PriorityHigh, Description: "Lead tracking + scheduling bundle (Save $100 setup + $25/month)",
			Reason: "get complete social media automation with lead attribution and scheduled posting",
		},
		{
			ID: "w015", Name: "Basic Website Chatbot", SetupFee: 300, MonthlyFee: 50,
			Priority: models.PriorityMedium, Description: "AI chatbot to answer common questions 24/7",
			Reason: "capture leads and answer questions even when you're not available",
		},
		{
			ID: "w016", Name: "Custom Chatbot Training", SetupFee: 500, MonthlyFee: 100,
			Priority: models.PriorityLow, Description: "Train your chatbot with your specific business knowledge",
			Reason: "provide personalized responses based on your products, services, and FAQs",
		},
		{
			ID: TestPackageID, Name: "🧪 RecTest Package", SetupFee: 2, MonthlyFee: 3,
			Priority:      models.PriorityTest,
			Description:   "Test package for payment processing ($2 setup + $3/month recurring)",
			Reason:        "test the complete payment and account creation workflow",
			IsTestPackage: true,
			CRMSubAccount: "crossoveraix",
			BillingSchedule: &models.BillingSchedule{
				SetupImmediate:  true,
				RecurringDelay:  "24h",
				RecurringAmount: 3,
			},
		},
	}
}

// Recommend applies the literal answer checks in order and returns the
// deduplicated service ids, first occurrence wins.
func Recommend(a models.AnswerSet) []string {
	var ids []string
	if budget := a.Text("budget"); budget != "" && !a.Contains("budget", "$500") {
		ids = append(ids, "w001", "w002", "w003")
	} else {
		ids = append(ids, "w001")
	}
	if a.Contains("mainNeed", "Better conversion/follow-up") {
		ids = append(ids, "w004", "w005")
	}
	if a.Contains("automationInterest", "AI Receptionist") {
		ids = append(ids, "w001")
	}
	if a.Contains("automationInterest", "Lead Nurturing Email Sequences") {
		ids = append(ids, "w002")
	}
	if a.Contains("hasWebsite", "No, I need a new website") {
		ids = append(ids, "w009")
	}
	if a.Contains("websiteInterest", "sales funnel with payment processing") {
		ids = append(ids, "w010")
	}
	if a.Contains("hasDomain", "No, I need help getting one") {
		ids = append(ids, "w011")
	}
	return dedupe(ids)
}

// Lookup resolves ids against the tailored catalog, preserving the order of ids.
func Lookup(a models.AnswerSet, ids []string) ([]models.Service, error) {
	byID := make(map[string]models.Service)
	for _, s := range Services(a) {
		byID[s.ID] = s
	}
	out := make([]models.Service, 0, len(ids))
	for _, id := range ids {
		s, ok := byID[id]
		if !ok {
			return nil, fmt.Errorf("%w: %s", ErrUnknownService, id)
		}
		out = append(out, s)
	}
	return out, nil
}

// Package builds the package view for a selection.
func Package(a models.AnswerSet, selected []string) (models.PackageView, error) {
	chosen, err := Lookup(a, selected)
	if err != nil {
		return models.PackageView{}, err
	}
	view := models.PackageView{
		Services:      Services(a),
		Selected:      selected,
		Recommended:   Recommend(a),
		SelectedCount: len(chosen),
	}
	if view.Selected == nil {
		view.Selected = []string{}
	}
	for _, s := range chosen {
		view.SetupTotal += s.SetupFee
		view.MonthlyTotal += s.MonthlyFee
	}
	return view, nil
}

// RemovalWarning is the confirmation shown before a service is dropped.
func RemovalWarning(a models.AnswerSet, id string) (string, error) {
	s, err := Lookup(a, []string{id})
	if err != nil {
		return "", err
	}
	return fmt.Sprintf("If we remove %s, you will not be able to %s.", s[0].Name, s[0].Reason), nil
}

func pick(cond bool, yes, no string) string {
	if cond {
		return yes
	}
	return no
}

func dedupe(ids []string) []string {
	seen := make(map[string]bool, len(ids))
	out := make([]string, 0, len(ids))
	for _, id := range ids {
		if seen[id] {
			continue
		}
		seen[id] = true
		out = append(out, id)
	}
	return out
}
