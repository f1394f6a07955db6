package analysis

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/finbuddy/finbuddy/internal/models"
)

const (
	// maxBodyRunes is the ceiling for a formatted analysis body. Telegram
	// caps messages at 4096 characters; the title and bold markers need
	// headroom below that.
	maxBodyRunes = 3900
	// truncateAt is where an oversized body gets cut before the trim notice.
	truncateAt = 3850
	// TransportLimit is Telegram's per-message character cap.
	TransportLimit = 4096

	trimNotice = "\n... (trimmed for length)"
)

// numberPattern matches standalone number tokens, with or without thousands
// separators and decimals.
var numberPattern = regexp.MustCompile(`\b\d{1,3}(?:,\d{3})+(?:\.\d+)?\b|\b\d+(?:\.\d+)?\b`)

// listMarkerPattern matches enumerated list lines such as "1.", "2)", "a)".
var listMarkerPattern = regexp.MustCompile(`^[0-9A-Za-z]+[.)]\s+`)

// headingPhrases are line prefixes promoted to bold headings, matched
// case-insensitively against the trimmed line. Bare words need a colon so
// ordinary sentences like "Strengths are clear." stay plain; the emoji
// forms are the headers the final-step prompt asks for.
var headingPhrases = []string{
	"✅ strengths", "strengths:",
	"⚠️ weaknesses", "weaknesses:",
	"📊 ratings", "ratings:",
	"overall assessment:", "key highlights:", "analysis:", "summary:",
	"fundamental quality:", "financial health:", "overall stock quality:",
	"stock data overview:", "business summary:",
}

type lineClass int

const (
	linePlain lineClass = iota
	lineBlank
	lineHeading
	lineListItem
)

// classifyLine decides how one sanitized line is re-emphasized. It sees text
// with all markup already stripped, so markers like "1." are literal.
func classifyLine(line string) lineClass {
	trimmed := strings.TrimSpace(line)
	if trimmed == "" {
		return lineBlank
	}
	lower := strings.ToLower(trimmed)
	for _, h := range headingPhrases {
		if strings.HasPrefix(lower, h) {
			return lineHeading
		}
	}
	if listMarkerPattern.MatchString(trimmed) {
		return lineListItem
	}
	return linePlain
}

// sanitize strips every markup character the model may have emitted.
// Backticks, asterisks and underscores are removed; square brackets become
// parentheses so no accidental link syntax survives.
var sanitizer = strings.NewReplacer(
	"`", "",
	"*", "",
	"_", "",
	"[", "(",
	"]", ")",
)

func sanitize(text string) string {
	return sanitizer.Replace(text)
}

func boldNumbers(line string) string {
	return numberPattern.ReplaceAllStringFunc(line, func(m string) string {
		return "*" + m + "*"
	})
}

// FormatAnalysis turns raw model output into a Telegram-safe Markdown
// message: markup stripped, then emphasis re-applied deterministically.
// Heading and list-item lines are bolded whole; plain lines get number
// tokens bolded. Blank lines are preserved. Oversized bodies are truncated
// with a visible notice.
func FormatAnalysis(raw, stockName, ticker string) string {
	lines := strings.Split(sanitize(raw), "\n")
	out := make([]string, 0, len(lines))
	for _, line := range lines {
		switch classifyLine(line) {
		case lineBlank:
			out = append(out, line)
		case lineHeading, lineListItem:
			out = append(out, "*"+strings.TrimSpace(line)+"*")
		default:
			out = append(out, boldNumbers(line))
		}
	}

	body := strings.TrimSpace(strings.Join(out, "\n"))
	if runes := []rune(body); len(runes) > maxBodyRunes {
		cut := string(runes[:truncateAt])
		// The cut can land inside a bold span; drop the dangling opener
		// and its partial content so the markup stays balanced.
		if strings.Count(cut, "*")%2 != 0 {
			cut = cut[:strings.LastIndex(cut, "*")]
		}
		body = strings.TrimRight(cut, " \n") + trimNotice
	}
	return fmt.Sprintf("🧠 *AI Analysis: %s (%s)*\n\n%s", stockName, ticker, body)
}

// FormatStepResult renders a step outcome for delivery. Failures produce a
// labeled error message instead of an analysis.
func FormatStepResult(res *models.StepResult) string {
	if res.OK() {
		return FormatAnalysis(res.Analysis, res.StockName, res.Ticker)
	}
	name := res.StockName
	if name == "" {
		name = res.Ticker
	}
	return fmt.Sprintf("❌ Could not generate the AI analysis for %s (%s). Please try again in a moment.", name, res.Ticker)
}

// Chunk splits text into fixed-size pieces no longer than limit runes. Text
// within the limit comes back as a single chunk.
func Chunk(text string, limit int) []string {
	if limit <= 0 || text == "" {
		return []string{text}
	}
	runes := []rune(text)
	chunks := make([]string, 0, (len(runes)+limit-1)/limit)
	for start := 0; start < len(runes); start += limit {
		end := start + limit
		if end > len(runes) {
			end = len(runes)
		}
		chunks = append(chunks, string(runes[start:end]))
	}
	return chunks
}
