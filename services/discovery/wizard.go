package discovery

import (
	"errors"
	"strings"

	"salesnav/models"
	"salesnav/services/catalog"
)

var (
	// ErrAnswerRequired blocks advancing past an unanswered required question.
	ErrAnswerRequired = errors.New("answer required")
	// ErrUnknownQuestion is returned for answers to questions not in the script.
	ErrUnknownQuestion = errors.New("unknown question")
	// ErrAnswerShape is returned when a list is given for a single-value question or vice versa.
	ErrAnswerShape = errors.New("answer does not match question type")
)

// customSuffix keys the free text typed next to an "Other" option.
const customSuffix = "_custom"

func currentQuestion(s *models.DiscoverySession) models.Question {
	return stages[s.Stage].Questions[s.Question]
}

func isLastQuestion(s *models.DiscoverySession) bool {
	return s.Stage == len(stages)-1 && s.Question == len(stages[s.Stage].Questions)-1
}

// CanAdvance reports whether the current question lets the wizard move on.
func CanAdvance(s *models.DiscoverySession) bool {
	q := currentQuestion(s)
	if !q.Required {
		return true
	}
	return !s.Answers[q.ID].IsEmpty()
}

// Advance moves to the next question, rolling into the next stage when the
// current one is exhausted. Advancing past the final question generates the
// package and selects the recommended services. Once the package is ready
// Advance leaves the session alone.
func Advance(s *models.DiscoverySession) error {
	if s.PackageReady {
		return nil
	}
	if !CanAdvance(s) {
		return ErrAnswerRequired
	}
	switch {
	case s.Question < len(stages[s.Stage].Questions)-1:
		s.Question++
	case s.Stage < len(stages)-1:
		s.Stage++
		s.Question = 0
	default:
		generatePackage(s)
	}
	return nil
}

// Retreat mirrors Advance. Leaving the package view returns to the final
// question; at the very first question it does nothing.
func Retreat(s *models.DiscoverySession) {
	switch {
	case s.PackageReady:
		s.PackageReady = false
	case s.Question > 0:
		s.Question--
	case s.Stage > 0:
		s.Stage--
		s.Question = len(stages[s.Stage].Questions) - 1
	}
}

// Progress is the share of all questions with a non-empty answer, as a percentage.
func Progress(a models.AnswerSet) float64 {
	total := totalQuestions()
	if total == 0 {
		return 0
	}
	answered := 0
	for _, st := range stages {
		for _, q := range st.Questions {
			if !a[q.ID].IsEmpty() {
				answered++
			}
		}
	}
	return float64(answered) / float64(total) * 100
}

// SetAnswer records an answer after checking it against the script. Free
// text for an "Other" option is stored under "<questionId>_custom".
func SetAnswer(s *models.DiscoverySession, questionID string, value models.Answer) error {
	if s.Answers == nil {
		s.Answers = models.AnswerSet{}
	}
	if base, ok := strings.CutSuffix(questionID, customSuffix); ok {
		q, found := QuestionByID(base)
		if !found || !q.AllowCustom {
			return ErrUnknownQuestion
		}
		if value.Multi {
			return ErrAnswerShape
		}
		s.Answers[questionID] = value
		return nil
	}
	q, ok := QuestionByID(questionID)
	if !ok {
		return ErrUnknownQuestion
	}
	if q.IsMulti() != value.Multi {
		return ErrAnswerShape
	}
	s.Answers[questionID] = value
	return nil
}

// ApplyTestMode loads the canned answers and jumps straight to the package.
func ApplyTestMode(s *models.DiscoverySession) {
	s.Answers = testAnswers()
	s.Stage = len(stages) - 1
	s.Question = len(stages[s.Stage].Questions) - 1
	generatePackage(s)
}

// generatePackage replaces the selection with the recommendation, so any
// terms priced or signed for the old selection are dropped with it.
func generatePackage(s *models.DiscoverySession) {
	s.PackageReady = true
	s.SelectedServices = catalog.Recommend(s.Answers)
	s.Proposal = nil
	s.Signature = nil
}

// View renders the session for the wizard front end.
func View(s *models.DiscoverySession) models.WizardView {
	st := stages[s.Stage]
	return models.WizardView{
		SessionID:      s.ID,
		StageIndex:     s.Stage,
		StageTitle:     st.Title,
		StageIcon:      st.Icon,
		StageCount:     len(stages),
		QuestionIndex:  s.Question,
		QuestionCount:  len(st.Questions),
		Question:       currentQuestion(s),
		Progress:       Progress(s.Answers),
		CanAdvance:     CanAdvance(s),
		CanGoBack:      s.PackageReady || s.Stage > 0 || s.Question > 0,
		IsLastQuestion: isLastQuestion(s),
		PackageReady:   s.PackageReady,
		Answers:        s.Answers,
	}
}
