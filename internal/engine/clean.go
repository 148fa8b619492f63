package engine

import (
	"strings"
	"time"
)

// notSpecified is the placeholder for fields the upstream left empty.
const notSpecified = "Not specified"

// wpDateLayout is the upstream's site-local timestamp format.
const wpDateLayout = "2006-01-02T15:04:05"

// postedDateLayout renders dates the way the caller's locale writes them
// (day-first, en-IN convention).
const postedDateLayout = "02/01/2006"

// cleanListing maps one raw upstream record to a Listing. Failure is local:
// an unusable record yields nil and is dropped by the caller, never aborting
// the batch.
func cleanListing(raw rawListing) *Listing {
	if raw.ID <= 0 {
		return nil
	}
	title := DecodeEntities(strings.TrimSpace(raw.Title.Rendered))
	if title == "" {
		return nil
	}

	desc := StripHTML(raw.Content.Rendered)
	desc = TruncateRunes(desc, cfg.DescriptionLimit, "...")

	return &Listing{
		ID:                 raw.ID,
		Slug:               raw.Slug,
		Title:              title,
		Link:               raw.Link,
		Employer:           defaultString(DecodeEntities(string(raw.Meta.CompanyName))),
		EmployerLogo:       string(raw.Meta.CompanyLogo),
		EmployerURL:        string(raw.Meta.CompanyWebsite),
		Location:           flattenValues(raw.Locations),
		JobType:            flattenValues(raw.Types),
		Category:           flattenValues(raw.Categories),
		Qualification:      defaultString(string(raw.Meta.Qualification)),
		Experience:         defaultString(string(raw.Meta.Experience)),
		Salary:             formatSalary(string(raw.Meta.Salary), string(raw.Meta.SalaryMax)),
		Description:        desc,
		PostedDate:         formatPostedDate(raw.Date),
		FullDescriptionURL: raw.Link,
	}
}

// flattenValues joins object-valued taxonomy terms into a comma-separated
// string, decoding entities in each term.
func flattenValues(vals flexValues) string {
	var parts []string
	for _, v := range vals {
		v = DecodeEntities(strings.TrimSpace(v))
		if v != "" {
			parts = append(parts, v)
		}
	}
	if len(parts) == 0 {
		return notSpecified
	}
	return strings.Join(parts, ", ")
}

// formatSalary renders "min - max" when both bounds exist, the single bound
// when only one does, and "Not specified" otherwise.
func formatSalary(min, max string) string {
	min = strings.TrimSpace(min)
	max = strings.TrimSpace(max)
	switch {
	case min != "" && max != "":
		return min + " - " + max
	case min != "":
		return min
	case max != "":
		return max
	default:
		return notSpecified
	}
}

// formatPostedDate renders the upstream timestamp as a localized date string,
// or "" when the date is absent or unparseable.
func formatPostedDate(date string) string {
	if date == "" {
		return ""
	}
	t, err := time.Parse(wpDateLayout, date)
	if err != nil {
		return ""
	}
	return t.Format(postedDateLayout)
}

func defaultString(s string) string {
	if strings.TrimSpace(s) == "" {
		return notSpecified
	}
	return s
}
