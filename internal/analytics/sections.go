package analytics

import (
	"regexp"
	"strings"
)

// AnalysisSection is one labeled topical slice of an AI rationale text,
// produced purely as a rendering aid.
type AnalysisSection struct {
	Icon    string `json:"icon"`
	Title   string `json:"title"`
	Content string `json:"content"`
}

// minParseableRunes is the shortest rationale worth segmenting.
const minParseableRunes = 50

// minSectionContent filters out matches whose captured body is effectively
// empty (a header with nothing behind it).
const minSectionContent = 10

// sectionPattern recognizes one bilingual topic header. Content runs from
// the end of the header match to the first occurrence of any boundary stem,
// or to the end of the text.
type sectionPattern struct {
	header     *regexp.Regexp
	boundaries []string
	icon       string
	title      string
}

// sectionPatterns is the ordered topic table. The header phrases and
// boundary stems match the bilingual (Korean/English) headers the analysis
// pipeline emits; new section types are added here, not in the control flow.
var sectionPatterns = []sectionPattern{
	{
		header:     regexp.MustCompile(`(?is)기술적 분석.*?TECHNICAL ANALYSIS.*?:`),
		boundaries: []string{"시장 심리", "뉴스 감정", "유튜브", "유동성", "리스크", "포지션", "실행"},
		icon:       "📊",
		title:      "Technical Analysis",
	},
	{
		header:     regexp.MustCompile(`(?is)시장 심리.*?SENTIMENT ANALYSIS.*?:`),
		boundaries: []string{"뉴스 감정", "유튜브", "유동성", "리스크", "포지션", "실행", "기술적"},
		icon:       "😊",
		title:      "Market Sentiment",
	},
	{
		header:     regexp.MustCompile(`(?is)뉴스 감정.*?NEWS SENTIMENT.*?:`),
		boundaries: []string{"유튜브", "유동성", "리스크", "포지션", "실행", "기술적", "시장"},
		icon:       "📰",
		title:      "News Analysis",
	},
	{
		header:     regexp.MustCompile(`(?is)유튜브.*?YOUTUBE.*?ANALYSIS.*?:`),
		boundaries: []string{"유동성", "리스크", "포지션", "실행", "기술적", "시장", "뉴스"},
		icon:       "📱",
		title:      "Social Analysis",
	},
	{
		header:     regexp.MustCompile(`(?is)유동성.*?LIQUIDITY.*?:`),
		boundaries: []string{"리스크", "포지션", "실행", "기술적", "시장", "뉴스", "유튜브"},
		icon:       "💧",
		title:      "Liquidity Analysis",
	},
	{
		header:     regexp.MustCompile(`(?is)리스크.*?RISK.*?ASSESSMENT.*?:`),
		boundaries: []string{"포지션", "실행", "기술적", "시장", "뉴스", "유튜브", "유동성"},
		icon:       "⚖️",
		title:      "Risk Assessment",
	},
	{
		header:     regexp.MustCompile(`(?is)포지션.*?POSITION.*?STRATEGY.*?:`),
		boundaries: []string{"실행", "기술적", "시장", "뉴스", "유튜브", "유동성", "리스크"},
		icon:       "📈",
		title:      "Position Strategy",
	},
	{
		header:     regexp.MustCompile(`(?is)실행.*?ACTIONABLE.*?:`),
		boundaries: []string{"기술적", "시장", "뉴스", "유튜브", "유동성", "리스크", "포지션"},
		icon:       "🎯",
		title:      "Execution Plan",
	},
}

// technicalTerms are indicator labels that get pulled onto their own bullet
// line for readability. Each term includes its trailing colon.
var technicalTerms = []string{
	"RSI:", "MACD:", "일봉:", "시간봉:", "다이버전스:", "볼린저밴드:",
	"이동평균선:", "스토캐스틱:", "거래량:", "지지선:", "저항선:",
	"트렌드:", "오실레이터:", "황금십자:", "죽음의십자:",
}

// fallback icon/title rotation for texts with no recognized headers.
var (
	fallbackIcons  = []string{"📊", "💡", "⚡", "🎯"}
	fallbackTitles = []string{"Technical Analysis", "Market Trend", "Strategy Elements", "Execution Plan"}
)

// fallbackContentRunes caps each fallback section's content.
const fallbackContentRunes = 200

// ParseSections segments an AI rationale text into labeled sections using
// the bilingual topic table. Sections appear in pattern-table order, not
// text order; multiple matches of one pattern keep text order. When no
// pattern matches, the text is evenly split into four generic sections.
// Texts shorter than 50 runes yield nil.
func ParseSections(text string) []AnalysisSection {
	trimmed := strings.TrimSpace(text)
	if len([]rune(trimmed)) < minParseableRunes {
		return nil
	}

	var sections []AnalysisSection
	for _, p := range sectionPatterns {
		for _, loc := range p.header.FindAllStringIndex(text, -1) {
			content := strings.TrimSpace(text[loc[1]:boundaryIndex(text, loc[1], p.boundaries)])
			if len([]rune(content)) <= minSectionContent {
				continue
			}
			sections = append(sections, AnalysisSection{
				Icon:    p.icon,
				Title:   p.title,
				Content: formatSectionContent(content),
			})
		}
	}

	if len(sections) == 0 {
		return fallbackSections(trimmed)
	}
	return sections
}

// boundaryIndex finds where a section's content ends: the first occurrence
// of any boundary stem at or after start, or the end of the text.
func boundaryIndex(text string, start int, boundaries []string) int {
	end := len(text)
	for _, b := range boundaries {
		if i := strings.Index(text[start:], b); i >= 0 && start+i < end {
			end = start + i
		}
	}
	return end
}

// formatSectionContent collapses whitespace, turns pipe-delimited segments
// into bullet lines and pulls known indicator labels onto their own lines.
func formatSectionContent(content string) string {
	content = whitespaceRe.ReplaceAllString(content, " ")
	content = strings.ReplaceAll(content, "|", "\n• ")
	for _, term := range technicalTerms {
		content = strings.ReplaceAll(content, term, "\n• "+term+" ")
	}
	return content
}

// fallbackSections splits unstructured text on sentence boundaries into four
// contiguous groups, the remainder folded into the last.
func fallbackSections(text string) []AnalysisSection {
	parts := strings.Split(text, ". ")
	if len(parts) <= 8 {
		return nil
	}

	groupSize := len(parts) / 4
	var sections []AnalysisSection
	for i := 0; i < 4; i++ {
		start := i * groupSize
		end := start + groupSize
		if i == 3 {
			end = len(parts)
		}
		content := strings.TrimSpace(strings.Join(parts[start:end], ". "))
		if content == "" {
			continue
		}
		if runes := []rune(content); len(runes) > fallbackContentRunes {
			content = string(runes[:fallbackContentRunes]) + "..."
		}
		sections = append(sections, AnalysisSection{
			Icon:    fallbackIcons[i],
			Title:   fallbackTitles[i],
			Content: content,
		})
	}
	return sections
}
