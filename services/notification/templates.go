package notification

import (
	"bytes"
	"html/template"
	"time"

	"salesnav/utils"
)

var funcs = template.FuncMap{
	"usd":  utils.FormatUSD,
	"date": func(t time.Time) string { return t.Format("1/2/2006") },
	"orNA": func(s string) string {
		if s == "" {
			return "Not provided"
		}
		return s
	},
}

var clientTmpl = template.Must(template.New("client").Funcs(funcs).Parse(`<div style="font-family: Arial, sans-serif; max-width: 600px; margin: 0 auto;">
  <h2 style="color: #10b981;">Payment Successful!</h2>
  <p>Thank you for your purchase, {{.Client.Name}}!</p>
  <h3>Package Details:</h3>
  <table style="width: 100%; border-collapse: collapse;">
    <tr style="background: #f3f4f6;">
      <td style="padding: 10px; border: 1px solid #e5e7eb;"><strong>Package:</strong></td>
      <td style="padding: 10px; border: 1px solid #e5e7eb;">{{.PackageName}}</td>
    </tr>
    <tr>
      <td style="padding: 10px; border: 1px solid #e5e7eb;"><strong>Setup Fee (Paid Today):</strong></td>
      <td style="padding: 10px; border: 1px solid #e5e7eb;">{{usd .SetupFee}}</td>
    </tr>
    <tr style="background: #f3f4f6;">
      <td style="padding: 10px; border: 1px solid #e5e7eb;"><strong>Monthly Fee:</strong></td>
      <td style="padding: 10px; border: 1px solid #e5e7eb;">{{usd .MonthlyFee}}/month</td>
    </tr>
    <tr>
      <td style="padding: 10px; border: 1px solid #e5e7eb;"><strong>Next Billing Date:</strong></td>
      <td style="padding: 10px; border: 1px solid #e5e7eb;">{{date .NextBillingDate}}</td>
    </tr>
  </table>
  <p style="margin-top: 20px;">Your recurring billing will start in 24 hours.</p>
  <p>We'll be in touch soon to begin your onboarding!</p>
  <p style="color: #6b7280; font-size: 14px; margin-top: 30px;">
    Payment ID: {{.PaymentIntentID}}<br>
    Subscription ID: {{.SubscriptionID}}
  </p>
</div>`))

var salesTmpl = template.Must(template.New("sales").Funcs(funcs).Parse(`<div style="font-family: Arial, sans-serif; max-width: 600px; margin: 0 auto;">
  <h2 style="color: #10b981;">💰 New Payment Received!</h2>
  <h3>Client Information:</h3>
  <table style="width: 100%; border-collapse: collapse; margin-bottom: 20px;">
    <tr style="background: #f3f4f6;"><td style="padding: 10px; border: 1px solid #e5e7eb;"><strong>Name:</strong></td><td style="padding: 10px; border: 1px solid #e5e7eb;">{{.Client.Name}}</td></tr>
    <tr><td style="padding: 10px; border: 1px solid #e5e7eb;"><strong>Email:</strong></td><td style="padding: 10px; border: 1px solid #e5e7eb;">{{.Client.Email}}</td></tr>
    <tr style="background: #f3f4f6;"><td style="padding: 10px; border: 1px solid #e5e7eb;"><strong>Phone:</strong></td><td style="padding: 10px; border: 1px solid #e5e7eb;">{{orNA .Client.Phone}}</td></tr>
    <tr><td style="padding: 10px; border: 1px solid #e5e7eb;"><strong>Business:</strong></td><td style="padding: 10px; border: 1px solid #e5e7eb;">{{orNA .Client.BusinessName}}</td></tr>
  </table>
  <h3>Package Details:</h3>
  <table style="width: 100%; border-collapse: collapse; margin-bottom: 20px;">
    <tr style="background: #f3f4f6;"><td style="padding: 10px; border: 1px solid #e5e7eb;"><strong>Package:</strong></td><td style="padding: 10px; border: 1px solid #e5e7eb;">{{.PackageName}}</td></tr>
    <tr><td style="padding: 10px; border: 1px solid #e5e7eb;"><strong>Setup Fee:</strong></td><td style="padding: 10px; border: 1px solid #e5e7eb;">{{usd .SetupFee}} <span style="color: #10b981; font-weight: bold;">✓ PAID</span></td></tr>
    <tr style="background: #f3f4f6;"><td style="padding: 10px; border: 1px solid #e5e7eb;"><strong>Monthly Fee:</strong></td><td style="padding: 10px; border: 1px solid #e5e7eb;">{{usd .MonthlyFee}}/month (starts {{date .NextBillingDate}})</td></tr>
  </table>
  <h3>Payment Details:</h3>
  <table style="width: 100%; border-collapse: collapse; margin-bottom: 20px;">
    <tr style="background: #f3f4f6;"><td style="padding: 10px; border: 1px solid #e5e7eb;"><strong>Payment ID:</strong></td><td style="padding: 10px; border: 1px solid #e5e7eb;">{{.PaymentIntentID}}</td></tr>
    <tr><td style="padding: 10px; border: 1px solid #e5e7eb;"><strong>Subscription ID:</strong></td><td style="padding: 10px; border: 1px solid #e5e7eb;">{{.SubscriptionID}}</td></tr>
    <tr style="background: #f3f4f6;"><td style="padding: 10px; border: 1px solid #e5e7eb;"><strong>Customer ID:</strong></td><td style="padding: 10px; border: 1px solid #e5e7eb;">{{.CustomerID}}</td></tr>
  </table>
  <p style="background: #fef3c7; padding: 15px; border-left: 4px solid #f59e0b;">
    <strong>⚡ Action Required:</strong> Begin client onboarding process immediately.
  </p>
</div>`))

func render(t *template.Template, data interface{}) (string, error) {
	var buf bytes.Buffer
	if err := t.Execute(&buf, data); err != nil {
		return "", err
	}
	return buf.String(), nil
}
