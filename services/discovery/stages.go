package discovery

import "salesnav/models"

// stages is the fixed discovery script. Every client sees every question.
var stages = []models.Stage{
	{ID: 0, Title: "Discovery & Rapport", Icon: "👋", Questions: []models.Question{
		{ID: "name", Type: models.QuestionSelect, Label: "What's your name?", Required: true, AllowCustom: true,
			Options: []string{"John Smith", "Jane Doe", "Michael Johnson", "Sarah Williams", "David Brown", "Emily Davis", "Other (type below)"}},
		{ID: "email", Type: models.QuestionEmail, Label: "What's your best email address?", Required: true},
		{ID: "phone", Type: models.QuestionTel, Label: "What's your phone number?", Required: true},
		{ID: "businessName", Type: models.QuestionSelect, Label: "What's your business name?", Required: true, AllowCustom: true,
			Options: []string{"ABC Consulting", "XYZ Services", "Premier Solutions", "Elite Group", "Pro Services", "Other (type below)"}},
		{ID: "role", Type: models.QuestionSelect, Label: "What's your role or title?", Required: true,
			Options: []string{"Owner", "CEO", "Managing Director", "Operations Manager", "Sales Manager", "Marketing Manager", "Other"}},
		{ID: "industry", Type: models.QuestionSelect, Label: "What type of business or industry are you in?", Required: true,
			Options: []string{
				"Professional Services (Consulting, Legal, Accounting)",
				"Healthcare & Wellness",
				"Real Estate",
				"Home Services (Plumbing, HVAC, Contractors)",
				"Retail & E-commerce",
				"Fitness & Coaching",
				"Beauty & Spa",
				"Financial Services",
				"Technology & IT Services",
				"Other",
			}},
		{ID: "targetCustomer", Type: models.QuestionSelect, Label: "Who's your target customer or ideal client?", Required: true,
			Options: []string{
				"Small business owners",
				"Enterprise/Corporate clients",
				"Individual consumers",
				"Healthcare professionals",
				"Real estate agents/investors",
				"Homeowners",
				"Other businesses (B2B)",
				"Other",
			}},
		{ID: "hasWebsite", Type: models.QuestionRadio, Label: "Do you currently have a website?", Required: true,
			Options: []string{"Yes, and it works well", "Yes, but it needs improvement", "No, I need a new website", "No, but I'm not sure if I need one"}},
		{ID: "websiteInterest", Type: models.QuestionRadio, Label: "Are you interested in a new website, sales funnel, or landing page?", Required: true,
			Options: []string{"Yes, I need a complete website", "Yes, I need a sales funnel with payment processing", "Yes, I need a simple landing page", "No, not at this time"}},
		{ID: "hasDomain", Type: models.QuestionRadio, Label: "Do you have a domain name (e.g., yourbusiness.com)?", Required: true,
			Options: []string{"Yes, I own a domain", "No, I need help getting one", "Not sure / Need guidance"}},
	}},
	{ID: 1, Title: "Diagnostic", Icon: "🔍", Questions: []models.Question{
		{ID: "mainFrustration", Type: models.QuestionSelect, Label: "What's the biggest frustration or bottleneck in your business right now?", Required: true,
			Options: []string{
				"Not enough leads coming in",
				"Leads not converting to customers",
				"Too much manual work/no automation",
				"Poor follow-up with prospects",
				"Missed calls and opportunities",
				"Inconsistent revenue",
				"Can't scale the business",
				"Other",
			}},
		{ID: "holdingBack", Type: models.QuestionSelect, Label: "What do you feel is currently holding your business back from growing faster?", Required: true,
			Options: []string{
				"Lack of automation",
				"No clear sales process",
				"Limited online presence",
				"Not enough time",
				"Budget constraints",
				"Technical challenges",
				"Competition",
				"Other",
			}},
		{ID: "leadHandling", Type: models.QuestionRadio, Label: "Are you losing potential customers because of missed calls or slow response time?", Required: true,
			Options: []string{"Yes, frequently", "Sometimes", "Rarely", "Not sure"}},
		{ID: "urgency", Type: models.QuestionRadio, Label: "On a scale of 1-10, how important is it for you to fix that problem now?", Required: true,
			Options: []string{"9-10 (Critical)", "7-8 (High)", "4-6 (Moderate)", "1-3 (Low)"}},
		{ID: "problemCost", Type: models.QuestionSelect, Label: "What do you think it's costing you (in time, money, or energy) to not have that problem solved?", Required: true,
			Options: []string{
				"Thousands of dollars per month in lost revenue",
				"Hundreds of dollars per month",
				"Significant time (10+ hours per week)",
				"Moderate time (5-10 hours per week)",
				"High stress and burnout",
				"Missed growth opportunities",
				"Other",
			}},
	}},
	{ID: 2, Title: "Desired Outcomes", Icon: "🎯", Questions: []models.Question{
		{ID: "successVision", Type: models.QuestionSelect, Label: "What would success look like for you in the next 3-6 months?", Required: true,
			Options: []string{
				"2x more leads and customers",
				"50% more revenue",
				"Fully automated lead follow-up",
				"More time to focus on growth",
				"Consistent 5-star reviews",
				"Professional online presence",
				"Streamlined operations",
				"Other",
			}},
		{ID: "successMetrics", Type: models.QuestionCheckbox, Label: "How would you measure success?", Required: true,
			Options: []string{"More calls/inquiries", "Higher close rate", "More automation", "Better online presence", "Happier customers"}},
		{ID: "timeline", Type: models.QuestionRadio, Label: "How soon would you like to see results or changes?", Required: true,
			Options: []string{"Within 1 month", "1-3 months", "3-6 months", "6+ months"}},
	}},
	{ID: 3, Title: "Resources & Constraints", Icon: "💰", Questions: []models.Question{
		{ID: "budget", Type: models.QuestionRadio, Label: "What's your comfortable investment range for solving this problem?", Required: true,
			Options: []string{"$500 - $1,000", "$1,000 - $2,500", "$2,500 - $5,000", "$5,000+"}},
		{ID: "decisionMaker", Type: models.QuestionRadio, Label: "Are you the final decision-maker for this investment?", Required: true,
			Options: []string{"Yes, I can decide now", "I need to involve others", "I need approval from someone else"}},
		{ID: "timelineToDecide", Type: models.QuestionRadio, Label: "How quickly would you be ready to move forward if you found a solution that fits?", Required: true,
			Options: []string{"Today/This week", "Within 2 weeks", "Within a month", "Just researching"}},
	}},
	{ID: 4, Title: "Solution Mapping", Icon: "🛠️", Questions: []models.Question{
		{ID: "mainNeed", Type: models.QuestionCheckbox, Label: "What are your main needs? (Select all that apply)", Required: true,
			Options: []string{"More qualified leads", "Better conversion/follow-up", "More automation", "Online visibility (website/branding)", "Customer engagement"}},
		{ID: "automationInterest", Type: models.QuestionCheckbox, Label: "Which automation tools interest you most?", Required: true,
			Options: []string{"Automated Appointment Booking", "Lead Nurturing Email Sequences", "Automated Review Requests", "Social Media Lead Tracking", "Chatbot for Website"}},
	}},
	{ID: 5, Title: "Objections", Icon: "💬", Questions: []models.Question{
		{ID: "concerns", Type: models.QuestionCheckbox, Label: "Do you have any concerns before moving forward?",
			Options: []string{"Price/Budget", "Timing", "Trust/Credibility", "Technical complexity", "Risk (what if it doesn't work?)", "No concerns"}},
		{ID: "additionalQuestions", Type: models.QuestionTextarea, Label: "What questions do you have before we move forward?"},
	}},
	{ID: 6, Title: "Commitment", Icon: "✅", Questions: []models.Question{
		{ID: "readyToMove", Type: models.QuestionRadio, Label: "Based on everything we've discussed, are you ready to move forward?", Required: true,
			Options: []string{"Yes, let's get started today", "Yes, but I need a proposal first", "Maybe, I need more time to think", "Not right now"}},
	}},
	{ID: 7, Title: "Follow-Up", Icon: "📧", Questions: []models.Question{
		{ID: "nextSteps", Type: models.QuestionRadio, Label: "What would be the best next step for you?", Required: true,
			Options: []string{"Schedule onboarding call", "Receive detailed proposal", "Schedule follow-up call", "Receive more information"}},
	}},
}

// Stages returns the discovery script.
func Stages() []models.Stage { return stages }

// QuestionByID finds a question anywhere in the script.
func QuestionByID(id string) (models.Question, bool) {
	for _, st := range stages {
		for _, q := range st.Questions {
			if q.ID == id {
				return q, true
			}
		}
	}
	return models.Question{}, false
}

func totalQuestions() int {
	n := 0
	for _, st := range stages {
		n += len(st.Questions)
	}
	return n
}

// testAnswers is the canned answer set used by test mode.
func testAnswers() models.AnswerSet {
	return models.AnswerSet{
		"name":                models.TextAnswer("John Smith"),
		"email":               models.TextAnswer("john@example.com"),
		"phone":               models.TextAnswer("555-123-4567"),
		"businessName":        models.TextAnswer("Test Business Inc"),
		"role":                models.TextAnswer("Owner"),
		"industry":            models.TextAnswer("Professional Services (Consulting, Legal, Accounting)"),
		"targetCustomer":      models.TextAnswer("Small business owners"),
		"hasWebsite":          models.TextAnswer("Yes, but it needs improvement"),
		"websiteInterest":     models.TextAnswer("Yes, I need a sales funnel with payment processing"),
		"hasDomain":           models.TextAnswer("Yes, I own a domain"),
		"mainFrustration":     models.TextAnswer("Not enough leads coming in"),
		"holdingBack":         models.TextAnswer("Lack of automation"),
		"leadHandling":        models.TextAnswer("Yes, frequently"),
		"urgency":             models.TextAnswer("9-10 (Critical)"),
		"problemCost":         models.TextAnswer("Thousands of dollars per month in lost revenue"),
		"successVision":       models.TextAnswer("2x more leads and customers"),
		"successMetrics":      models.MultiAnswer("More calls/inquiries", "Higher close rate", "More automation"),
		"timeline":            models.TextAnswer("Within 1 month"),
		"budget":              models.TextAnswer("$2,500 - $5,000"),
		"decisionMaker":       models.TextAnswer("Yes, I can decide now"),
		"timelineToDecide":    models.TextAnswer("Today/This week"),
		"mainNeed":            models.MultiAnswer("More qualified leads", "Better conversion/follow-up", "More automation"),
		"automationInterest":  models.MultiAnswer("Automated Appointment Booking", "Lead Nurturing Email Sequences", "Social Media Lead Tracking"),
		"concerns":            models.MultiAnswer("No concerns"),
		"additionalQuestions": models.TextAnswer(""),
		"readyToMove":         models.TextAnswer("Yes, let's get started today"),
		"nextSteps":           models.TextAnswer("See a proposal and pricing"),
	}
}
