package copywriter

import (
	"bytes"
	"text/template"
)

const systemPrompt = "You are an expert email copywriter for small businesses. Write professional, friendly, and effective email templates."

var prompts = map[string]*template.Template{
	TypeWelcome: template.Must(template.New("welcome").Parse(`Write a warm welcome email for {{.BusinessName}}, a {{.Industry}} business. The email should:
- Thank the customer for choosing them
- Briefly introduce what they can expect
- Provide contact information
- Be friendly and professional
Keep it under 150 words.`)),
	TypeOnboarding: template.Must(template.New("onboarding").Parse(`Write an onboarding email for {{.BusinessName}} that:
- Welcomes new clients
- Outlines the next steps
- Sets expectations
- Provides support contact
Keep it under 150 words.`)),
	TypeFollowup: template.Must(template.New("followup").Parse(`Write a follow-up email for {{.BusinessName}} that:
- Checks in on the customer
- Asks if they need any help
- Offers additional services
- Maintains the relationship
Keep it under 150 words.`)),
	TypeNurture: template.Must(template.New("nurture").Parse(`Write a nurture email for {{.BusinessName}} that:
- Provides value to prospects
- Educates about services
- Builds trust
- Includes a soft call-to-action
Keep it under 150 words.`)),
	TypeReview: template.Must(template.New("review").Parse(`Write a review request email for {{.BusinessName}} that:
- Thanks the customer for their business
- Politely asks for a review
- Makes it easy with a direct link
- Expresses appreciation
Keep it under 100 words.`)),
}

var fallbacks = map[string]*template.Template{
	TypeWelcome: template.Must(template.New("welcome").Parse(`Subject: Welcome to {{.BusinessName}}!

Hi {{.Name}},

Thank you for choosing {{.BusinessName}}! We're excited to have you with us.

Over the coming days, we'll be reaching out to ensure everything is set up perfectly for you. If you have any questions in the meantime, please don't hesitate to reach out.

We're here to help you succeed!

Best regards,
The {{.BusinessName}} Team`)),
	TypeOnboarding: template.Must(template.New("onboarding").Parse(`Subject: Let's Get Started!

Hi {{.Name}},

Welcome aboard! We're thrilled to begin working with you.

Here's what happens next:
1. We'll schedule your onboarding call
2. Set up your account and systems
3. Begin implementation

You'll receive a calendar invite shortly. In the meantime, feel free to reply to this email with any questions.

Looking forward to working together!

Best,
The {{.BusinessName}} Team`)),
	TypeFollowup: template.Must(template.New("followup").Parse(`Subject: Checking In

Hi {{.Name}},

I wanted to check in and see how everything is going with {{.BusinessName}}.

Do you have any questions or need any assistance? We're here to help ensure you're getting the most value from our services.

Feel free to reply to this email or give us a call anytime.

Best regards,
The {{.BusinessName}} Team`)),
	TypeNurture: template.Must(template.New("nurture").Parse(`Subject: Quick Tip for Your Business

Hi {{.Name}},

We wanted to share a quick insight that might help your business:

[TIP: Insert relevant industry tip or insight here]

This is just one of the many ways {{.BusinessName}} helps businesses like yours succeed. If you'd like to learn more about how we can help, just reply to this email.

Best,
The {{.BusinessName}} Team`)),
	TypeReview: template.Must(template.New("review").Parse(`Subject: We'd Love Your Feedback!

Hi {{.Name}},

Thank you for choosing {{.BusinessName}}! We hope you've had a great experience.

If you have a moment, we'd really appreciate it if you could leave us a review. Your feedback helps us improve and helps other businesses find us.

[REVIEW LINK]

Thank you so much!

The {{.BusinessName}} Team`)),
}

func execute(t *template.Template, info BusinessInfo) string {
	var buf bytes.Buffer
	// Templates only reference string fields of BusinessInfo and cannot fail.
	_ = t.Execute(&buf, info)
	return buf.String()
}
