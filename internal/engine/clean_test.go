package engine

import (
	"encoding/json"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func mustRaw(t *testing.T, data string) rawListing {
	t.Helper()
	var raw rawListing
	require.NoError(t, json.Unmarshal([]byte(data), &raw))
	return raw
}

func TestCleanListing(t *testing.T) {
	initTestEngine(t, "http://upstream.invalid")

	raw := mustRaw(t, `{
		"id": 101,
		"slug": "head-kabaddi-coach",
		"link": "https://example.org/job/head-kabaddi-coach/",
		"date": "2026-03-15T09:30:00",
		"title": {"rendered": "Head Kabaddi Coach &#8211; Senior Team"},
		"content": {"rendered": "<p>Lead the <strong>senior squad</strong> &amp; run trials.</p>"},
		"meta": {
			"_company_name": "Mumbai Sports Trust",
			"_company_logo": "https://example.org/logo.png",
			"_company_website": "https://example.org",
			"_job_salary": "40000",
			"_job_salary_max": "60000",
			"_job_qualification": "NIS Diploma",
			"_job_experience": "5 years"
		},
		"job-locations": {"12": "Mumbai", "15": "Navi Mumbai"},
		"job-types": ["Full Time"],
		"job-categories": ["Coaching"]
	}`)

	l := cleanListing(raw)
	require.NotNil(t, l)

	assert.Equal(t, 101, l.ID)
	assert.Equal(t, "Head Kabaddi Coach – Senior Team", l.Title)
	assert.Equal(t, "Lead the senior squad & run trials.", l.Description)
	assert.Equal(t, "Mumbai Sports Trust", l.Employer)
	assert.Equal(t, "Mumbai, Navi Mumbai", l.Location)
	assert.Equal(t, "Full Time", l.JobType)
	assert.Equal(t, "Coaching", l.Category)
	assert.Equal(t, "NIS Diploma", l.Qualification)
	assert.Equal(t, "5 years", l.Experience)
	assert.Equal(t, "40000 - 60000", l.Salary)
	assert.Equal(t, "15/03/2026", l.PostedDate)
	assert.Equal(t, l.Link, l.FullDescriptionURL)
	assert.Nil(t, l.Relevance)
}

func TestCleanListingSalary(t *testing.T) {
	initTestEngine(t, "http://upstream.invalid")

	tests := []struct {
		name string
		meta string
		want string
	}{
		{"min only", `{"_job_salary": "10000"}`, "10000"},
		{"both bounds", `{"_job_salary": "10000", "_job_salary_max": "18000"}`, "10000 - 18000"},
		{"max only", `{"_job_salary_max": "18000"}`, "18000"},
		{"neither", `{}`, "Not specified"},
		{"numeric values tolerated", `{"_job_salary": 10000, "_job_salary_max": 18000}`, "10000 - 18000"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			raw := mustRaw(t, `{"id": 7, "title": {"rendered": "Umpire"}, "meta": `+tt.meta+`}`)
			l := cleanListing(raw)
			require.NotNil(t, l)
			assert.Equal(t, tt.want, l.Salary)
		})
	}
}

func TestCleanListingDefaults(t *testing.T) {
	initTestEngine(t, "http://upstream.invalid")

	raw := mustRaw(t, `{"id": 8, "title": {"rendered": "Scorer"}}`)
	l := cleanListing(raw)
	require.NotNil(t, l)

	assert.Equal(t, notSpecified, l.Employer)
	assert.Equal(t, notSpecified, l.Location)
	assert.Equal(t, notSpecified, l.JobType)
	assert.Equal(t, notSpecified, l.Category)
	assert.Equal(t, notSpecified, l.Qualification)
	assert.Equal(t, notSpecified, l.Experience)
	assert.Equal(t, notSpecified, l.Salary)
	assert.Empty(t, l.PostedDate)
	assert.Empty(t, l.Description)
}

func TestCleanListingTruncatesDescription(t *testing.T) {
	initTestEngine(t, "http://upstream.invalid")

	long := strings.Repeat("a", 2000)
	raw := mustRaw(t, `{"id": 9, "title": {"rendered": "Analyst"}, "content": {"rendered": "`+long+`"}}`)
	l := cleanListing(raw)
	require.NotNil(t, l)

	assert.True(t, strings.HasSuffix(l.Description, "..."))
	assert.LessOrEqual(t, len([]rune(l.Description)), cfg.DescriptionLimit+3)
}

func TestCleanListingDropsUnusableRecords(t *testing.T) {
	initTestEngine(t, "http://upstream.invalid")

	t.Run("missing id", func(t *testing.T) {
		raw := mustRaw(t, `{"title": {"rendered": "Ghost"}}`)
		assert.Nil(t, cleanListing(raw))
	})
	t.Run("empty title", func(t *testing.T) {
		raw := mustRaw(t, `{"id": 10, "title": {"rendered": "  "}}`)
		assert.Nil(t, cleanListing(raw))
	})
}
