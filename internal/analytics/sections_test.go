package analytics

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestParseSectionsShortInput(t *testing.T) {
	assert.Empty(t, ParseSections(""))
	assert.Empty(t, ParseSections("short"))
	assert.Empty(t, ParseSections("   \n  "))
}

func TestParseSectionsBilingualHeaders(t *testing.T) {
	text := "기술적 분석 (TECHNICAL ANALYSIS): RSI: 45 중립 구간 | MACD: 하락 전환 신호 " +
		"시장 심리 (SENTIMENT ANALYSIS): 공포탐욕지수 55로 중립적이며 거래 심리가 안정적입니다 " +
		"리스크 평가 (RISK ASSESSMENT): 변동성 확대 구간으로 보수적 접근이 필요합니다"

	sections := ParseSections(text)

	assert.Len(t, sections, 3)
	assert.Equal(t, "Technical Analysis", sections[0].Title)
	assert.Equal(t, "📊", sections[0].Icon)
	assert.Equal(t, "Market Sentiment", sections[1].Title)
	assert.Equal(t, "Risk Assessment", sections[2].Title)

	// Pipes become bullet lines and known indicator labels get their own line.
	assert.Contains(t, sections[0].Content, "\n• MACD:")
	assert.Contains(t, sections[0].Content, "\n• RSI:")
	// Content stops at the next recognized header.
	assert.NotContains(t, sections[0].Content, "공포탐욕지수")
	assert.Contains(t, sections[1].Content, "공포탐욕지수")
}

func TestParseSectionsPatternOrderNotTextOrder(t *testing.T) {
	// Sentiment appears first in the text but technical analysis comes first
	// in the pattern table.
	text := "시장 심리 (SENTIMENT ANALYSIS): 시장 참여자들의 심리가 극도로 위축된 상태입니다 " +
		"기술적 분석 (TECHNICAL ANALYSIS): 주요 지지선 부근에서 매수세가 유입되고 있습니다"

	sections := ParseSections(text)

	assert.Len(t, sections, 2)
	assert.Equal(t, "Technical Analysis", sections[0].Title)
	assert.Equal(t, "Market Sentiment", sections[1].Title)
}

func TestParseSectionsIgnoresEmptyBodies(t *testing.T) {
	// The technical header has nothing meaningful behind the colon; only the
	// risk section carries real content.
	text := "기술적 분석 (TECHNICAL ANALYSIS): 짧음 " +
		"리스크 평가 (RISK ASSESSMENT): 변동성이 급격히 확대되어 레버리지 축소와 보수적 접근이 필요한 구간입니다"

	sections := ParseSections(text)

	assert.Len(t, sections, 1)
	assert.Equal(t, "Risk Assessment", sections[0].Title)
}

func TestParseSectionsFallbackSplitsIntoFour(t *testing.T) {
	parts := make([]string, 9)
	for i := range parts {
		parts[i] = "이 문장은 섹션 헤더가 전혀 없는 일반적인 분석 내용입니다"
	}
	text := strings.Join(parts, ". ")

	sections := ParseSections(text)

	assert.Len(t, sections, 4)
	assert.Equal(t, "Technical Analysis", sections[0].Title)
	assert.Equal(t, "Market Trend", sections[1].Title)
	assert.Equal(t, "Strategy Elements", sections[2].Title)
	assert.Equal(t, "Execution Plan", sections[3].Title)
	assert.Equal(t, "📊", sections[0].Icon)
	assert.Equal(t, "🎯", sections[3].Icon)

	// Remainder folds into the last group: 9 fragments over groups of 2.
	for _, s := range sections {
		assert.NotEmpty(t, s.Content)
		assert.LessOrEqual(t, len([]rune(s.Content)), fallbackContentRunes+3)
	}
}

func TestParseSectionsFallbackNeedsEnoughSentences(t *testing.T) {
	// More than 50 runes but only a handful of sentences: no sections at all.
	text := "섹션 헤더가 전혀 없는 짧은 분석 내용입니다. 문장이 몇 개 되지 않는 경우입니다. 그래서 균등 분할 대상이 되지 않습니다."

	assert.Empty(t, ParseSections(text))
}
