package responder

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestInspect_SearchPage(t *testing.T) {
	site := newFakeSite([]*fakeVacancy{
		{ID: "11", Title: "Go разработчик", Variant: VariantModal},
		{ID: "12", Title: "Java разработчик", Variant: VariantModal, Applied: true},
	})
	site.lastPager = "disabled"
	site.open(t, site.searchURL(1))

	r, err := Inspect(context.Background(), site.page)
	require.NoError(t, err)

	assert.Equal(t, StateSearchList, r.State)
	require.Len(t, r.Cards, 2)
	assert.Equal(t, CardReport{
		Title:       "Go разработчик",
		ID:          "11",
		URL:         testBase + "/vacancy/11",
		RespondText: "Откликнуться",
		Eligible:    true,
	}, r.Cards[0])
	assert.False(t, r.Cards[1].Eligible)
	assert.Equal(t, "Вы откликнулись", r.Cards[1].RespondText)
	assert.Equal(t, 1, r.Eligible())
	assert.True(t, r.PagerPresent)
	assert.True(t, r.PagerDisabled)
	assert.False(t, r.Modal)
	assert.Equal(t, 0, site.page.Navigations())
}

func TestInspect_ResponsePage(t *testing.T) {
	site := newFakeSite([]*fakeVacancy{
		{ID: "21", Title: "QA инженер", Variant: VariantPage, Question: "Какой у вас опыт автотестов?"},
	})
	site.open(t, testBase+"/applicant/vacancy_response?vacancyId=21")

	r, err := Inspect(context.Background(), site.page)
	require.NoError(t, err)
	assert.Equal(t, StateResponsePage, r.State)
	assert.Empty(t, r.Cards)
	assert.False(t, r.PagerPresent)
	assert.False(t, r.LetterField, "поле письма появляется только после переключателя")
	assert.Equal(t, 1, r.Questions)
}
