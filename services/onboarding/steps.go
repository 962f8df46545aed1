package onboarding

import (
	"fmt"
	"regexp"
	"strings"
	"time"

	"salesnav/models"
)

type stepDef struct {
	id          int
	name        string
	prompt      func(a models.AnswerSet, today time.Time) string
	manualSteps []string
}

var nonLetters = regexp.MustCompile(`[^a-z]`)

func firstName(a models.AnswerSet) string {
	first, _, _ := strings.Cut(a.Text("name"), " ")
	return first
}

func lastName(a models.AnswerSet) string {
	_, rest, _ := strings.Cut(a.Text("name"), " ")
	return rest
}

func orDefault(s, def string) string {
	if s == "" {
		return def
	}
	return s
}

var setupSteps = []stepDef{
	{
		id: 1, name: "Create GHL Contact",
		prompt: func(a models.AnswerSet, _ time.Time) string {
			return fmt.Sprintf(`Create a new contact in GoHighLevel with the following details:
- First Name: %s
- Last Name: %s
- Email: %s
- Phone: %s
- Company Name: %s
- Source: Sales Discovery App
- Industry: %s`, firstName(a), lastName(a), a.Text("email"), a.Text("phone"), a.Text("businessName"), a.Text("industry"))
		},
		manualSteps: []string{
			"Log in to GoHighLevel",
			"Navigate to Contacts",
			`Click "+ Add Contact"`,
			"Fill in all contact details from the prompt above",
			`Set Source to "Sales Discovery App"`,
			"Click Save",
		},
	},
	{
		id: 2, name: "Create Opportunity/Deal",
		prompt: func(a models.AnswerSet, _ time.Time) string {
			return fmt.Sprintf(`Create a new opportunity in GoHighLevel for the contact "%[1]s":
- Opportunity Name: %[1]s - Sales Package
- Pipeline: Sales Pipeline
- Stage: New Lead
- Monetary Value: [Total from proposal]
- Status: Open
- Contact: %[2]s`, a.Text("businessName"), a.Text("name"))
		},
		manualSteps: []string{
			"Open the contact you just created",
			"Go to Opportunities tab",
			`Click "+ Add Opportunity"`,
			"Fill in opportunity details from the prompt",
			"Set pipeline and stage",
			"Click Save",
		},
	},
	{
		id: 3, name: "Add Service Tags",
		prompt: func(a models.AnswerSet, _ time.Time) string {
			urgency := "medium"
			if u := a.Text("urgency"); u != "" {
				urgency = nonLetters.ReplaceAllString(strings.ToLower(u), "-")
			}
			return fmt.Sprintf(`Add the following tags to the contact "%s" in GoHighLevel:
- service-appointment-booking
- service-lead-nurturing
- service-sales-pipeline
- client-status-onboarding
- urgency-%s`, a.Text("name"), urgency)
		},
		manualSteps: []string{
			"Open the contact profile",
			"Find the Tags section",
			"Click to add tags",
			"Add each tag from the prompt above",
			"Tags save automatically",
		},
	},
	{
		id: 4, name: "Create Custom Fields",
		prompt: func(a models.AnswerSet, today time.Time) string {
			return fmt.Sprintf(`Create the following custom fields in GoHighLevel for tracking:
- Field: "Discovery Date" | Type: Date | Value: %s
- Field: "Target Customer" | Type: Text | Value: %s
- Field: "Main Frustration" | Type: Text | Value: %s
- Field: "Success Vision" | Type: Text | Value: %s
- Field: "Budget Range" | Type: Text | Value: %s`,
				today.Format("1/2/2006"), a.Text("targetCustomer"), a.Text("mainFrustration"), a.Text("successVision"), a.Text("budget"))
		},
		manualSteps: []string{
			"Go to Settings → Custom Fields",
			`Click "+ Add Custom Field"`,
			"Create each field from the prompt",
			"Go back to the contact and fill in values",
			"Save changes",
		},
	},
	{
		id: 5, name: "Setup Email Templates",
		prompt: func(a models.AnswerSet, _ time.Time) string {
			return fmt.Sprintf(`Create email templates in GoHighLevel for %[1]s:

Template 1: Welcome Email
- Subject: Welcome to Crossover AI: X, %[2]s!
- Body: Thank you for choosing us. We're excited to help %[1]s achieve %[3]s.

Template 2: Onboarding Reminder
- Subject: Your Technical Onboarding Meeting is Coming Up
- Body: Hi %[2]s, we're preparing for your TOM session. Please have your assets ready.

Template 3: Follow-Up
- Subject: How are things going with your new automation?
- Body: Checking in to see how the new systems are working for %[1]s.`,
				a.Text("businessName"), firstName(a), orDefault(a.Text("successVision"), "your goals"))
		},
		manualSteps: []string{
			"Go to Marketing → Templates → Email",
			`Click "+ New Template"`,
			"Create each template from the prompts",
			"Save and activate each template",
		},
	},
	{
		id: 6, name: "Configure SMS Templates",
		prompt: func(a models.AnswerSet, _ time.Time) string {
			return fmt.Sprintf(`Create SMS templates in GoHighLevel for %[1]s:

Template 1: Appointment Confirmation
"Hi %[2]s, your appointment is confirmed for [DATE] at [TIME]. Reply YES to confirm."

Template 2: Reminder (24h before)
"Reminder: Your appointment with Crossover AI: X is tomorrow at [TIME]. See you then!"

Template 3: Follow-Up
"Hi %[2]s, how did everything go? Reply with any questions!"`, a.Text("businessName"), firstName(a))
		},
		manualSteps: []string{
			"Go to Marketing → Templates → SMS",
			`Click "+ New Template"`,
			"Create each SMS template",
			"Save and activate",
		},
	},
	{
		id: 7, name: "Create Appointment Calendar",
		prompt: func(models.AnswerSet, time.Time) string {
			return `Create a calendar in GoHighLevel for Technical Onboarding Meetings:
- Calendar Name: TOM - Technical Onboarding
- Duration: 60 minutes
- Buffer Time: 15 minutes before/after
- Availability: Monday-Friday, 9 AM - 5 PM
- Meeting Type: Zoom/Google Meet
- Assign to: [Your Name]
- Send confirmation email: Yes
- Send reminder: 24 hours before`
		},
		manualSteps: []string{
			"Go to Calendars",
			`Click "+ New Calendar"`,
			"Fill in details from the prompt",
			"Set availability hours",
			"Configure notifications",
			"Save calendar",
		},
	},
	{
		id: 8, name: "Setup Booking Widget",
		prompt: func(a models.AnswerSet, _ time.Time) string {
			return fmt.Sprintf(`Create a booking widget for the TOM calendar:
- Widget Name: TOM Booking - %s
- Calendar: TOM - Technical Onboarding
- Show: Available times for next 14 days
- Require: Name, Email, Phone
- Custom Question: "What's your biggest priority for this onboarding?"
- Confirmation Page: "Thank you! We'll see you at your TOM session."`, a.Text("businessName"))
		},
		manualSteps: []string{
			"Go to Calendars → Widgets",
			`Click "+ New Widget"`,
			"Select the TOM calendar",
			"Configure fields and questions",
			"Customize confirmation message",
			"Copy embed code",
		},
	},
	{
		id: 9, name: "Configure Lead Pipeline",
		prompt: func(a models.AnswerSet, _ time.Time) string {
			return fmt.Sprintf(`Setup the sales pipeline stages in GoHighLevel:
- Pipeline Name: %s Sales
- Stages:
  1. New Lead
  2. Discovery Complete
  3. Proposal Sent
  4. Negotiation
  5. Closed Won
  6. Onboarding
  7. Active Client
- Automation: Move to "Discovery Complete" when proposal is generated`, orDefault(a.Text("industry"), "Professional Services"))
		},
		manualSteps: []string{
			"Go to Opportunities → Pipelines",
			`Click "+ New Pipeline"`,
			"Add each stage from the prompt",
			"Set up stage automations",
			"Save pipeline",
		},
	},
	{
		id: 10, name: "Setup Automation Workflows",
		prompt: func(a models.AnswerSet, _ time.Time) string {
			return fmt.Sprintf(`Create automation workflows in GoHighLevel for %s:

Workflow 1: New Lead Nurture
- Trigger: Tag added "service-lead-nurturing"
- Action 1: Wait 5 minutes
- Action 2: Send welcome email
- Action 3: Wait 2 days
- Action 4: Send follow-up SMS
- Action 5: Wait 3 days
- Action 6: Send value email

Workflow 2: Appointment Reminders
- Trigger: Appointment booked
- Action 1: Send confirmation email immediately
- Action 2: Wait until 24 hours before
- Action 3: Send SMS reminder
- Action 4: Wait until 1 hour before
- Action 5: Send final SMS reminder`, a.Text("businessName"))
		},
		manualSteps: []string{
			"Go to Automation → Workflows",
			`Click "+ New Workflow"`,
			"Build each workflow from the prompts",
			"Test the workflow",
			"Activate when ready",
		},
	},
	{
		id: 12, name: "Setup Review Request Automation",
		prompt: func(a models.AnswerSet, _ time.Time) string {
			return fmt.Sprintf(`Create review request automation in GoHighLevel:
- Trigger: Tag added "service-automated-reviews"
- Wait: 7 days after service completion
- Send SMS: "Hi %s, we'd love your feedback! Please leave us a review: [REVIEW_LINK]"
- Wait: 3 days
- If no review: Send email reminder
- If review received: Send thank you message`, firstName(a))
		},
		manualSteps: []string{
			"Go to Automation → Workflows",
			`Create "Review Request" workflow`,
			"Add trigger and wait conditions",
			"Add SMS and email actions",
			"Set up conditional logic",
			"Activate workflow",
		},
	},
	{
		id: 13, name: "Create Welcome Email Sequence",
		prompt: func(a models.AnswerSet, _ time.Time) string {
			return fmt.Sprintf(`Build a welcome email sequence for %s:

Email 1 (Day 0): Welcome & Introduction
- Subject: Welcome to Crossover AI: X!
- Introduce team, set expectations, share onboarding timeline

Email 2 (Day 2): Getting Started Guide
- Subject: Your Quick Start Guide
- Share resources, tutorials, support contact

Email 3 (Day 5): Check-In
- Subject: How's everything going?
- Ask for feedback, offer help, schedule call if needed

Email 4 (Day 10): Tips & Best Practices
- Subject: Pro Tips for %s
- Share industry-specific tips, case studies

Email 5 (Day 14): Review & Next Steps
- Subject: Let's Review Your Progress
- Request review, discuss expansion opportunities`, a.Text("businessName"), orDefault(a.Text("industry"), "Your Industry"))
		},
		manualSteps: []string{
			"Go to Marketing → Campaigns",
			`Create "Welcome Sequence" campaign`,
			"Add each email from the prompts",
			"Set delays between emails",
			"Activate sequence",
		},
	},
	{
		id: 15, name: "Final Testing & Validation",
		prompt: func(a models.AnswerSet, _ time.Time) string {
			return fmt.Sprintf(`Run final tests on all systems for %s:

Test 1: Create a test contact and verify:
- Contact created successfully
- Tags applied correctly
- Custom fields populated
- Opportunity created

Test 2: Test automation workflows:
- Trigger welcome sequence
- Book test appointment
- Verify reminders sent

Test 3: Test AI Receptionist:
- Call the business number
- Ask common questions
- Verify responses

Test 4: Test booking widget:
- Open booking page
- Book test appointment
- Verify confirmation

Generate test report with any issues found.`, a.Text("businessName"))
		},
		manualSteps: []string{
			"Create test contact",
			"Trigger each automation",
			"Test all integrations",
			"Verify emails/SMS sent",
			"Document any issues",
			"Fix issues and retest",
		},
	},
}

var assetChecklist = []models.Asset{
	{ID: "logo", Name: "Company Logo (PNG/SVG)", Required: true},
	{ID: "brand-colors", Name: "Brand Colors/Style Guide"},
	{ID: "website-access", Name: "Website Access Credentials", Required: true},
	{ID: "ghl-access", Name: "GoHighLevel Login Info", Required: true},
	{ID: "email-access", Name: "Business Email Access"},
	{ID: "social-media", Name: "Social Media Account Info"},
}
