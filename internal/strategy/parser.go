package strategy

import "strings"

// Section markers the prompt contract asks the model to emit, and the keys
// the parsed result files them under. Order here is the contract order.
const (
	markerAudience = "AUDIENCE_ANALYSIS:"
	markerTrending = "TRENDING_TOPICS:"
	markerTopics   = "BLOG_TOPICS:"
	markerOutline  = "CONTENT_OUTLINE:"
	markerSEO      = "GENERAL_SEO:"

	topicStart = "---TOPIC_START---"
	topicEnd   = "---TOPIC_END---"
)

// Section keys of a parsed result.
const (
	SectionAudience = "audience_analysis"
	SectionTrending = "trending_topics"
	SectionTopics   = "topic_suggestions"
	SectionOutline  = "content_outline"
	SectionSEO      = "seo_recommendations"
)

// sections is the ordered (marker, key) table the parser scans with.
var sections = []struct {
	marker string
	key    string
}{
	{markerAudience, SectionAudience},
	{markerTrending, SectionTrending},
	{markerTopics, SectionTopics},
	{markerOutline, SectionOutline},
	{markerSEO, SectionSEO},
}

// SectionKeys returns the fixed section keys in contract order.
func SectionKeys() []string {
	keys := make([]string, len(sections))
	for i, s := range sections {
		keys[i] = s.key
	}
	return keys
}

// TopicIdea is one parsed blog-topic suggestion.
type TopicIdea struct {
	Title        string
	Rationale    string
	Keyword      string
	SearchVolume string
	Outline      []string
	SEOTips      []string
}

// Result is a parsed strategy. Sections always contains every key from
// SectionKeys; a section the model omitted maps to the empty string. Raw
// retains the unmodified response so the UI can fall back to it when
// parsing came up mostly empty.
type Result struct {
	Sections map[string]string
	Topics   []TopicIdea
	SEOItems []string
	Raw      string
}

// Empty reports whether every section came back blank.
func (r Result) Empty() bool {
	for _, v := range r.Sections {
		if v != "" {
			return false
		}
	}
	return true
}

// ParseResponse splits a raw model reply into the contract sections. It is
// total: any input, including the empty string or text with no markers at
// all, yields a Result without error. Matching is a single forward pass,
// case-insensitive; a missing marker leaves its section empty and the scan
// continues with the next one.
func ParseResponse(raw string) Result {
	res := Result{
		Sections: make(map[string]string, len(sections)),
		Raw:      raw,
	}
	for _, s := range sections {
		res.Sections[s.key] = ""
	}

	upper := asciiUpper(raw)

	// Locate each marker that is present, in order. A marker found before
	// the previous one is ignored: the contract order wins.
	type hit struct {
		key   string
		start int // content start, after the marker
		pos   int // marker position
	}
	var hits []hit
	cursor := 0
	for _, s := range sections {
		idx := strings.Index(upper[cursor:], s.marker)
		if idx < 0 {
			continue
		}
		pos := cursor + idx
		hits = append(hits, hit{key: s.key, start: pos + len(s.marker), pos: pos})
		cursor = pos + len(s.marker)
	}

	// Content runs from each marker to the next found marker or end of text.
	for i, h := range hits {
		end := len(raw)
		if i+1 < len(hits) {
			end = hits[i+1].pos
		}
		res.Sections[h.key] = strings.TrimSpace(raw[h.start:end])
	}

	res.Topics = parseTopics(res.Sections[SectionTopics])
	res.SEOItems = parseBullets(res.Sections[SectionSEO])

	return res
}

// asciiUpper uppercases ASCII letters only, leaving every other byte
// untouched. The markers are pure ASCII, and unlike strings.ToUpper this
// keeps byte lengths unchanged, so an index found here is valid in the
// original string.
func asciiUpper(s string) string {
	var b []byte
	for i := 0; i < len(s); i++ {
		c := s[i]
		if c >= 'a' && c <= 'z' {
			if b == nil {
				b = []byte(s)
			}
			b[i] = c - ('a' - 'A')
		}
	}
	if b == nil {
		return s
	}
	return string(b)
}

// parseTopics extracts TOPIC_START/TOPIC_END blocks from the topics
// section. Blocks missing their end marker, or fields missing inside a
// block, degrade to empty values rather than dropping the whole reply.
func parseTopics(text string) []TopicIdea {
	var topics []TopicIdea

	blocks := strings.Split(text, topicStart)
	for _, block := range blocks[1:] {
		endIdx := strings.Index(block, topicEnd)
		if endIdx < 0 {
			continue
		}
		block = block[:endIdx]

		t := TopicIdea{
			Title:        fieldBetween(block, "TITLE:", "RATIONALE:"),
			Rationale:    fieldBetween(block, "RATIONALE:", "KEYWORD:"),
			Keyword:      fieldBetween(block, "KEYWORD:", "SEARCH_VOLUME:"),
			SearchVolume: fieldBetween(block, "SEARCH_VOLUME:", "OUTLINE:"),
			Outline:      parseBullets(fieldBetween(block, "OUTLINE:", "SEO_RECOMMENDATIONS:")),
			SEOTips:      parseBullets(fieldBetween(block, "SEO_RECOMMENDATIONS:", "")),
		}
		topics = append(topics, t)
	}

	return topics
}

// fieldBetween returns the trimmed text after startMarker up to endMarker
// (or end of block when endMarker is empty or absent). Missing startMarker
// yields "".
func fieldBetween(block, startMarker, endMarker string) string {
	start := strings.Index(block, startMarker)
	if start < 0 {
		return ""
	}
	rest := block[start+len(startMarker):]
	if endMarker != "" {
		if end := strings.Index(rest, endMarker); end >= 0 {
			rest = rest[:end]
		}
	}
	return strings.TrimSpace(rest)
}

// parseBullets collects the "-"-prefixed lines of a section.
func parseBullets(text string) []string {
	var items []string
	for _, line := range strings.Split(text, "\n") {
		line = strings.TrimSpace(line)
		if strings.HasPrefix(line, "-") {
			item := strings.TrimSpace(strings.TrimPrefix(line, "-"))
			if item != "" {
				items = append(items, item)
			}
		}
	}
	return items
}
