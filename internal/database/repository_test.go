package database

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"hhResponder/internal/responder"
)

func TestApplicationModelRoundTrip(t *testing.T) {
	at := time.Date(2024, 5, 1, 10, 0, 0, 0, time.UTC)
	app := responder.Application{
		RunID:        "0b9f8d36-5b0e-4e0b-9f43-5b1d0a4f6b1e",
		VacancyID:    "123",
		Title:        "Go разработчик",
		URL:          "https://hh.ru/vacancy/123",
		Template:     "coverLetter_1",
		Variant:      responder.VariantModal,
		Questions:    2,
		Status:       responder.StatusSubmitted,
		Technologies: []string{"go", "postgresql"},
		Level:        "senior",
		CreatedAt:    at,
	}

	m := applicationModel(app)
	assert.Equal(t, "go,postgresql", m.Technologies)
	assert.Equal(t, app, m.toDomain())
}

func TestApplicationModelWithoutTechnologies(t *testing.T) {
	m := applicationModel(responder.Application{Title: "Вакансия"})
	assert.Empty(t, m.Technologies)
	assert.Nil(t, m.toDomain().Technologies)
}

func TestRunModel(t *testing.T) {
	finished := time.Now()
	m := runModel(responder.RunRecord{
		ID:         "id",
		StartState: "search_list",
		Processed:  3,
		Submitted:  2,
		Failed:     1,
		StopReason: responder.StopExhausted,
		FinishedAt: &finished,
	})
	require.NotNil(t, m.FinishedAt)
	assert.Equal(t, "id", m.ID)
	assert.Equal(t, 3, m.Processed)
	assert.Equal(t, responder.StopExhausted, m.StopReason)
}

func TestGormLogLevel(t *testing.T) {
	assert.NotEqual(t, gormLogLevel("debug"), gormLogLevel("error"))
	assert.Equal(t, gormLogLevel("info"), gormLogLevel("warn"))
}
