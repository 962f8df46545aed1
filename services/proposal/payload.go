package proposal

import (
	"salesnav/models"
	"salesnav/services/catalog"
)

// BuildPaymentRequest assembles the checkout payload for a priced session.
func BuildPaymentRequest(sess *models.DiscoverySession, paymentMethodID string) (models.ProcessPaymentRequest, error) {
	services, err := catalog.Lookup(sess.Answers, sess.SelectedServices)
	if err != nil {
		return models.ProcessPaymentRequest{}, err
	}

	a := sess.Answers
	req := models.ProcessPaymentRequest{
		ClientInfo: models.ClientInfo{
			Name:         a.Text("name"),
			Email:        a.Text("email"),
			Phone:        a.Text("phone"),
			BusinessName: a.Text("businessName"),
			Industry:     a.Text("industry"),
			Role:         a.Text("role"),
		},
		PackageDetails: models.PackageDetails{
			Pricing: sess.Proposal.Pricing,
		},
		PaymentAuthorization: models.PaymentAuthorization{PaymentMethodID: paymentMethodID},
		InterviewResponses:   interviewResponses(a),
		BillingSchedule: &models.BillingSchedule{
			SetupImmediate:  true,
			RecurringDelay:  "24 hours",
			RecurringAmount: sess.Proposal.Pricing.MonthlyRecurring,
		},
	}
	for _, s := range services {
		req.PackageDetails.Services = append(req.PackageDetails.Services, models.PackageService{
			ID:          s.ID,
			Name:        s.Name,
			SetupFee:    s.SetupFee,
			MonthlyFee:  s.MonthlyFee,
			Description: s.Description,
		})
		if s.IsTestPackage {
			req.TestMode = true
		}
		if req.CRMSubAccount == "" {
			req.CRMSubAccount = s.CRMSubAccount
		}
	}
	return req, nil
}

func interviewResponses(a models.AnswerSet) map[string]interface{} {
	out := make(map[string]interface{}, len(a))
	for id, ans := range a {
		if ans.Multi {
			out[id] = ans.Choices
		} else {
			out[id] = ans.Text
		}
	}
	return out
}
