package strategy

import (
	"fmt"
	"strings"
)

// ContentTypes is the fixed set of labels the generator form offers.
var ContentTypes = []string{
	"Blog Posts",
	"How-to Guides",
	"Listicles",
	"Case Studies",
	"News/Trends",
	"Mixed",
}

// Topic count bounds for a single request.
const (
	MinTopics     = 3
	MaxTopics     = 15
	DefaultTopics = 5
)

// Request holds the inputs for one strategy generation. It is built once
// per form submission and never persisted.
type Request struct {
	BusinessType   string
	Industry       string
	TargetAudience string
	ContentGoals   string
	Keywords       string // optional, comma-separated
	ContentType    string
	TopicCount     int
}

// Validate checks required fields, the content-type label and topic bounds.
func (r Request) Validate() error {
	if strings.TrimSpace(r.BusinessType) == "" {
		return fmt.Errorf("business type required")
	}
	if strings.TrimSpace(r.Industry) == "" {
		return fmt.Errorf("industry required")
	}
	if strings.TrimSpace(r.TargetAudience) == "" {
		return fmt.Errorf("target audience required")
	}
	if strings.TrimSpace(r.ContentGoals) == "" {
		return fmt.Errorf("content goals required")
	}
	valid := false
	for _, ct := range ContentTypes {
		if r.ContentType == ct {
			valid = true
			break
		}
	}
	if !valid {
		return fmt.Errorf("unknown content type %q", r.ContentType)
	}
	if r.TopicCount < MinTopics || r.TopicCount > MaxTopics {
		return fmt.Errorf("topic count must be between %d and %d", MinTopics, MaxTopics)
	}
	return nil
}

// BuildPrompt renders the full prompt for a request. It is a pure function:
// the same request always produces the byte-identical prompt. The output
// contract at the end is what ParseResponse scans for, so the marker
// vocabulary here and in parser.go must stay in sync.
func BuildPrompt(r Request) string {
	var b strings.Builder

	b.WriteString("You are an expert content strategist and SEO specialist. I need you to create a comprehensive content strategy based on the following information:\n\n")
	b.WriteString("**Business Information:**\n")
	fmt.Fprintf(&b, "- Business Type: %s\n", r.BusinessType)
	fmt.Fprintf(&b, "- Industry/Niche: %s\n", r.Industry)
	fmt.Fprintf(&b, "- Target Audience: %s\n", r.TargetAudience)
	fmt.Fprintf(&b, "- Content Goals: %s\n", r.ContentGoals)
	if r.Keywords != "" {
		fmt.Fprintf(&b, "- Target Keywords: %s\n", r.Keywords)
	}
	fmt.Fprintf(&b, "- Preferred Content Type: %s\n", r.ContentType)

	b.WriteString("\nPlease provide a detailed content strategy that includes:\n\n")

	b.WriteString("1. **AUDIENCE ANALYSIS** (2-3 paragraphs)\n")
	b.WriteString("   - Deep dive into the target audience's demographics, psychographics, pain points, and needs\n")
	b.WriteString("   - What keeps them up at night?\n")
	b.WriteString("   - What solutions are they searching for?\n")
	b.WriteString("   - What content formats do they prefer?\n\n")

	b.WriteString("2. **TRENDING TOPICS** (2-3 paragraphs)\n")
	fmt.Fprintf(&b, "   - Current trending topics in the %s industry\n", r.Industry)
	b.WriteString("   - Emerging trends and conversations\n")
	b.WriteString("   - Seasonal opportunities\n")
	b.WriteString("   - Content gaps in the market\n\n")

	fmt.Fprintf(&b, "3. **BLOG TOPIC SUGGESTIONS** (%d topics)\n", r.TopicCount)
	b.WriteString("   For each topic, provide:\n")
	b.WriteString("   - A compelling, SEO-friendly title\n")
	b.WriteString("   - Rationale: Why this topic is valuable (2-3 sentences)\n")
	b.WriteString("   - Target keyword phrase\n")
	b.WriteString("   - Estimated search volume category (High/Medium/Low)\n")
	b.WriteString("   - Detailed outline with 5-7 section headings\n")
	b.WriteString("   - 3-5 specific SEO recommendations for that post\n\n")

	b.WriteString("4. **CONTENT OUTLINE** (1-2 paragraphs plus a publishing cadence)\n")
	b.WriteString("   - How the suggested topics fit together as a coherent plan\n")
	b.WriteString("   - Recommended publishing order and cadence\n")
	b.WriteString("   - Internal linking opportunities between the pieces\n\n")

	b.WriteString("5. **GENERAL SEO STRATEGY** (5-7 recommendations)\n")
	b.WriteString("   - Overall SEO tactics for the content strategy\n")
	b.WriteString("   - Link building opportunities\n")
	b.WriteString("   - Content distribution strategies\n")
	b.WriteString("   - Technical SEO considerations\n\n")

	b.WriteString("Format your response EXACTLY as follows (this is critical for parsing):\n\n")
	b.WriteString(markerAudience + "\n[Your analysis here]\n\n")
	b.WriteString(markerTrending + "\n[Your trending topics analysis here]\n\n")
	b.WriteString(markerTopics + "\n")
	b.WriteString(topicStart + "\n")
	b.WriteString("TITLE: [Title here]\n")
	b.WriteString("RATIONALE: [Rationale here]\n")
	b.WriteString("KEYWORD: [Primary keyword]\n")
	b.WriteString("SEARCH_VOLUME: [High/Medium/Low]\n")
	b.WriteString("OUTLINE:\n- [Section 1]\n- [Section 2]\n- [Section 3]\n- [Section 4]\n- [Section 5]\n")
	b.WriteString("SEO_RECOMMENDATIONS:\n- [Recommendation 1]\n- [Recommendation 2]\n- [Recommendation 3]\n")
	b.WriteString(topicEnd + "\n\n")
	fmt.Fprintf(&b, "[Repeat for all %d topics]\n\n", r.TopicCount)
	b.WriteString(markerOutline + "\n[Your overall content plan here]\n\n")
	b.WriteString(markerSEO + "\n- [Recommendation 1]\n- [Recommendation 2]\n- [Recommendation 3]\n- [Recommendation 4]\n- [Recommendation 5]\n\n")

	b.WriteString("Be specific, actionable, and data-driven. Focus on topics that will drive traffic and conversions.")

	return b.String()
}
