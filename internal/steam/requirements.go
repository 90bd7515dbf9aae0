package steam

import (
	"regexp"
	"strings"
)

// SystemRequirements is the labeled breakdown of one requirement block.
type SystemRequirements struct {
	OS         string `json:"os,omitempty"`
	Processor  string `json:"processor,omitempty"`
	Memory     string `json:"memory,omitempty"`
	Graphics   string `json:"graphics,omitempty"`
	Storage    string `json:"storage,omitempty"`
	Additional string `json:"additional,omitempty"`
}

// Steam renders requirements as "<strong>Label:</strong> value" runs inside
// one HTML blob; the markup is consistent enough for plain extraction.
var reqPatterns = []struct {
	re     *regexp.Regexp
	assign func(*SystemRequirements, string)
}{
	{regexp.MustCompile(`(?i)<strong>OS[^:]*:</strong>\s*([^<]+)`), func(sr *SystemRequirements, v string) { sr.OS = v }},
	{regexp.MustCompile(`(?i)<strong>Processor[^:]*:</strong>\s*([^<]+)`), func(sr *SystemRequirements, v string) { sr.Processor = v }},
	{regexp.MustCompile(`(?i)<strong>Memory[^:]*:</strong>\s*([^<]+)`), func(sr *SystemRequirements, v string) { sr.Memory = v }},
	{regexp.MustCompile(`(?i)<strong>Graphics[^:]*:</strong>\s*([^<]+)`), func(sr *SystemRequirements, v string) { sr.Graphics = v }},
	{regexp.MustCompile(`(?i)<strong>(?:Storage|Hard Drive)[^:]*:</strong>\s*([^<]+)`), func(sr *SystemRequirements, v string) { sr.Storage = v }},
	{regexp.MustCompile(`(?i)<strong>Additional[^:]*:</strong>\s*([^<]+)`), func(sr *SystemRequirements, v string) { sr.Additional = v }},
}

// ParseRequirements extracts labeled fields from a requirement HTML block.
// Unrecognized or absent labels stay empty.
func ParseRequirements(html string) SystemRequirements {
	var sr SystemRequirements
	if html == "" {
		return sr
	}

	for _, p := range reqPatterns {
		if m := p.re.FindStringSubmatch(html); m != nil {
			p.assign(&sr, strings.TrimSpace(m[1]))
		}
	}
	return sr
}

var (
	brTag    = regexp.MustCompile(`(?i)<br\s*/?>`)
	closeP   = regexp.MustCompile(`(?i)</p>`)
	anyTag   = regexp.MustCompile(`<[^>]+>`)
	entities = strings.NewReplacer(
		"&nbsp;", " ",
		"&amp;", "&",
		"&lt;", "<",
		"&gt;", ">",
		"&quot;", `"`,
	)
)

// StripTags flattens a Steam HTML description to plain text.
func StripTags(html string) string {
	s := brTag.ReplaceAllString(html, "\n")
	s = closeP.ReplaceAllString(s, "\n\n")
	s = anyTag.ReplaceAllString(s, "")
	s = entities.Replace(s)
	return strings.TrimSpace(s)
}
