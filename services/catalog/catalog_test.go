package catalog

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"salesnav/models"
)

func TestRecommend_DefaultsToBooking(t *testing.T) {
	assert.Equal(t, []string{"w001"}, Recommend(models.AnswerSet{}))
	assert.Equal(t, []string{"w001"}, Recommend(models.AnswerSet{"budget": models.TextAnswer("$500 - $1,000")}))
}

func TestRecommend_LiteralChecksDeduplicated(t *testing.T) {
	a := models.AnswerSet{
		"budget":             models.TextAnswer("$2,500 - $5,000"),
		"mainNeed":           models.MultiAnswer("More qualified leads", "Better conversion/follow-up"),
		"automationInterest": models.MultiAnswer("Lead Nurturing Email Sequences"),
		"hasWebsite":         models.TextAnswer("No, I need a new website"),
		"websiteInterest":    models.TextAnswer("Yes, I need a sales funnel with payment processing"),
		"hasDomain":          models.TextAnswer("No, I need help getting one"),
	}
	assert.Equal(t, []string{"w001", "w002", "w003", "w004", "w005", "w009", "w010", "w011"}, Recommend(a))
}

func TestRecommend_MultiSelectRequiresExactOption(t *testing.T) {
	a := models.AnswerSet{"mainNeed": models.MultiAnswer("Better conversion")}
	assert.Equal(t, []string{"w001"}, Recommend(a))
}

func TestServices_ReasonsFollowAnswers(t *testing.T) {
	a := models.AnswerSet{
		"leadHandling": models.TextAnswer("Yes, frequently"),
		"hasWebsite":   models.TextAnswer("No, but I'm not sure if I need one"),
	}
	byID := map[string]models.Service{}
	for _, s := range Services(a) {
		byID[s.ID] = s
	}
	assert.Equal(t, "solve your problem of missed calls and slow response time", byID["w001"].Reason)
	assert.Equal(t, models.PriorityHigh, byID["w009"].Priority)
	assert.Equal(t, models.PriorityLow, byID["w011"].Priority)
	assert.True(t, byID[TestPackageID].IsTestPackage)
	assert.NotContains(t, byID, "w007")
}

func TestPackage_Totals(t *testing.T) {
	view, err := Package(models.AnswerSet{}, []string{"w001", "w011"})
	require.NoError(t, err)
	assert.Equal(t, 550.0, view.SetupTotal)
	assert.Equal(t, 100.0, view.MonthlyTotal)
	assert.Equal(t, 2, view.SelectedCount)
	assert.Len(t, view.Services, 16)
}

func TestLookup_UnknownID(t *testing.T) {
	_, err := Lookup(models.AnswerSet{}, []string{"w001", "w007"})
	assert.True(t, errors.Is(err, ErrUnknownService))
}

func TestRemovalWarning(t *testing.T) {
	msg, err := RemovalWarning(models.AnswerSet{}, "w005")
	require.NoError(t, err)
	assert.Equal(t, "If we remove Automated Review Requests, you will not be able to build your online reputation with more reviews.", msg)
}
