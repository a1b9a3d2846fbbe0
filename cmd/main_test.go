package main

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"hhResponder/internal/responder"
)

const savedSearchPage = `<html><head><title>Вакансии</title></head><body>
<div data-qa="vacancy-serp__vacancy">
  <a data-qa="serp-item__title" href="/vacancy/101">Go разработчик</a>
  <a data-qa="vacancy-serp__vacancy_response" href="/applicant/vacancy_response?vacancyId=101">Откликнуться</a>
</div>
</body></html>`

func TestInspectCommand(t *testing.T) {
	path := filepath.Join(t.TempDir(), "search.html")
	require.NoError(t, os.WriteFile(path, []byte(savedSearchPage), 0o600))

	var out bytes.Buffer
	rootCmd.SetOut(&out)
	rootCmd.SetArgs([]string{"inspect", path, "--url", "https://hh.ru/search/vacancy?text=go"})
	require.NoError(t, rootCmd.Execute())

	assert.Contains(t, out.String(), "Тип страницы: search_list")
	assert.Contains(t, out.String(), "Карточек: 1")
}

func TestInspectMissingFile(t *testing.T) {
	rootCmd.SetArgs([]string{"inspect", filepath.Join(t.TempDir(), "missing.html")})
	require.Error(t, rootCmd.Execute())
}

func TestPrintReport(t *testing.T) {
	var out bytes.Buffer
	printReport(&out, responder.Report{
		URL:   "https://hh.ru/search/vacancy",
		State: responder.StateSearchList,
		Cards: []responder.CardReport{
			{Title: "Go разработчик", ID: "1", RespondText: "Откликнуться", Eligible: true},
			{Title: "QA", ID: "2", RespondText: "Вы откликнулись"},
		},
		PagerPresent: true,
	})

	s := out.String()
	assert.Contains(t, s, "Карточек: 2, доступно для отклика: 1")
	assert.Contains(t, s, "+  1. Go разработчик [1]")
	assert.Contains(t, s, "-  2. QA [2]")
}

func TestProfileText(t *testing.T) {
	text := profileText(responder.Profile{Name: "Иван", Skills: "Go, PostgreSQL"})
	assert.Equal(t, "Имя: Иван\nНавыки: Go, PostgreSQL\n", text)
}
