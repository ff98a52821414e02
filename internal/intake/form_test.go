package intake

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/niramoy/clinic-api/internal/model"
)

func testService() *model.Service {
	svc := &model.Service{
		Name:          "Skin Consultation",
		Amount:        "1500",
		AmountMonthly: "4000",
	}
	svc.ID = uuid.New()

	textQ := model.Question{
		ID:         uuid.New(),
		ServiceID:  svc.ID,
		Text:       "Describe your symptoms",
		AnswerType: model.AnswerTypeText,
	}
	dropdownQ := model.Question{
		ID:         uuid.New(),
		ServiceID:  svc.ID,
		Text:       "How severe is the condition?",
		AnswerType: model.AnswerTypeDropdown,
		Options: []model.Option{
			{ID: uuid.New(), Label: "Mild"},
			{ID: uuid.New(), Label: "Severe"},
		},
	}
	checkboxQ := model.Question{
		ID:         uuid.New(),
		ServiceID:  svc.ID,
		Text:       "How long have you had it?",
		AnswerType: model.AnswerTypeCheckbox,
		Options: []model.Option{
			{ID: uuid.New(), Label: "Under a month"},
			{ID: uuid.New(), Label: "Over a year"},
		},
	}
	svc.Questions = []model.Question{textQ, dropdownQ, checkboxQ}
	return svc
}

func TestFormPayload(t *testing.T) {
	svc := testService()
	form, err := NewForm(svc)
	require.NoError(t, err)

	require.NoError(t, form.SetText(svc.Questions[0].ID, "itchy skin"))
	require.NoError(t, form.Select(svc.Questions[1].ID, svc.Questions[1].Options[1].ID))
	require.NoError(t, form.Select(svc.Questions[2].ID, svc.Questions[2].Options[0].ID))

	payload, err := form.Payload(Contact{Name: "Rahim", Phone: "01712345678"})
	require.NoError(t, err)

	assert.Equal(t, model.AppointmentStatusPending, payload.Status)
	assert.Equal(t, svc.ID, payload.ServiceID)

	require.Len(t, payload.Questions, 3)
	assert.Equal(t, "Describe your symptoms", payload.Questions[0].Question)
	assert.Equal(t, "itchy skin", payload.Questions[0].Answer)
	assert.Equal(t, "How severe is the condition?", payload.Questions[1].Question)
	assert.Equal(t, "Severe", payload.Questions[1].Answer)
	assert.Equal(t, "Under a month", payload.Questions[2].Answer)
}

func TestFormBlocksUnanswered(t *testing.T) {
	svc := testService()
	form, err := NewForm(svc)
	require.NoError(t, err)

	require.NoError(t, form.SetText(svc.Questions[0].ID, "itchy skin"))

	_, err = form.Payload(Contact{Name: "Rahim", Phone: "01712345678"})
	assert.ErrorIs(t, err, ErrUnanswered)
	assert.Len(t, form.Unanswered(), 2)
}

func TestFormBlocksBlankContact(t *testing.T) {
	svc := testService()
	form, err := NewForm(svc)
	require.NoError(t, err)

	require.NoError(t, form.SetText(svc.Questions[0].ID, "itchy skin"))
	require.NoError(t, form.Select(svc.Questions[1].ID, svc.Questions[1].Options[0].ID))
	require.NoError(t, form.Select(svc.Questions[2].ID, svc.Questions[2].Options[0].ID))

	_, err = form.Payload(Contact{Name: "   ", Phone: "01712345678"})
	assert.ErrorIs(t, err, ErrMissingContact)

	_, err = form.Payload(Contact{Name: "Rahim", Phone: "\t"})
	assert.ErrorIs(t, err, ErrMissingContact)
}

func TestCheckboxIsSingleSelect(t *testing.T) {
	svc := testService()
	form, err := NewForm(svc)
	require.NoError(t, err)

	q := svc.Questions[2]
	require.NoError(t, form.Select(q.ID, q.Options[0].ID))
	require.NoError(t, form.Select(q.ID, q.Options[1].ID))

	got, ok := form.Answer(q.ID)
	require.True(t, ok)
	assert.Equal(t, q.Options[1].ID.String(), got, "second selection must replace the first")
}

func TestWhitespaceAnswerCountsAsUnanswered(t *testing.T) {
	svc := testService()
	form, err := NewForm(svc)
	require.NoError(t, err)

	require.NoError(t, form.SetText(svc.Questions[0].ID, "   "))
	require.NoError(t, form.Select(svc.Questions[1].ID, svc.Questions[1].Options[0].ID))
	require.NoError(t, form.Select(svc.Questions[2].ID, svc.Questions[2].Options[0].ID))

	err = form.Validate(Contact{Name: "Rahim", Phone: "01712345678"})
	assert.ErrorIs(t, err, ErrUnanswered)
}

func TestSelectRejectsBadInput(t *testing.T) {
	svc := testService()
	form, err := NewForm(svc)
	require.NoError(t, err)

	// free-text question takes no options
	err = form.Select(svc.Questions[0].ID, uuid.New())
	assert.ErrorIs(t, err, ErrNoOptions)

	// option must belong to the question
	err = form.Select(svc.Questions[1].ID, uuid.New())
	assert.ErrorIs(t, err, ErrUnknownOption)

	// unknown question id
	err = form.SetText(uuid.New(), "hello")
	assert.ErrorIs(t, err, ErrUnknownQuestion)

	// text answer on a choice question
	err = form.SetText(svc.Questions[1].ID, "hello")
	assert.ErrorIs(t, err, ErrNotTextQuestion)
}
