package engine

import (
	"regexp"
	"strconv"
	"strings"

	"github.com/anatolykoptev/go-kit/strutil"
	"golang.org/x/net/html"
)

// User-Agent sent on all upstream requests.
const UserAgentBot = "JobDiscovery/1.0"

// StripHTML removes markup from s and collapses runs of whitespace. Text is
// extracted with a streaming tokenizer, so entities inside text nodes are
// decoded and malformed attribute values cannot leak tag fragments.
func StripHTML(s string) string {
	if !strings.ContainsAny(s, "<&") {
		return collapseSpace(s)
	}
	tok := html.NewTokenizer(strings.NewReader(s))
	var b strings.Builder
	for {
		switch tok.Next() {
		case html.ErrorToken:
			return collapseSpace(b.String())
		case html.TextToken:
			b.Write(tok.Text())
			b.WriteByte(' ')
		}
	}
}

var spaceRe = regexp.MustCompile(`\s+`)

func collapseSpace(s string) string {
	return strings.TrimSpace(spaceRe.ReplaceAllString(s, " "))
}

// htmlEntities is the fixed table of named entities the upstream emits in
// rendered titles and taxonomy terms.
var htmlEntities = strings.NewReplacer(
	"&amp;", "&",
	"&quot;", `"`,
	"&apos;", "'",
	"&ndash;", "–",
	"&mdash;", "—",
	"&lsquo;", "‘",
	"&rsquo;", "’",
	"&ldquo;", "“",
	"&rdquo;", "”",
	"&nbsp;", " ",
	"&lt;", "<",
	"&gt;", ">",
)

var numericEntityRe = regexp.MustCompile(`&#(\d+);`)

// DecodeEntities decodes the fixed named-entity table plus decimal numeric
// entities (&#8211; and friends). Used for fields that are entity-escaped but
// carry no markup, like rendered titles.
func DecodeEntities(s string) string {
	if !strings.Contains(s, "&") {
		return s
	}
	s = numericEntityRe.ReplaceAllStringFunc(s, func(m string) string {
		n, err := strconv.Atoi(m[2 : len(m)-1])
		if err != nil || n <= 0 || n > 0x10FFFF {
			return m
		}
		return string(rune(n))
	})
	return htmlEntities.Replace(s)
}

// TruncateRunes caps s at limit runes, appending suffix if truncated.
// Safe for UTF-8 (Devanagari, CJK, emoji).
func TruncateRunes(s string, limit int, suffix string) string {
	return strutil.TruncateWith(s, limit, suffix)
}
