package rfcore

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestThreatReportTextContainsLevelAndScore(t *testing.T) {
	var e threat_engine_t
	e.startAnalysis()
	for i := 0; i < 10; i++ {
		e.onFrame([]byte{0x00, 0x00, 0x00})
	}
	var a = e.assess()
	var text = a.ReportText(0, 0)
	assert.True(t, strings.Contains(text, a.level))
	assert.True(t, strings.Contains(text, "score"))
}

func TestThreatReportTextTruncatesAtMaxLen(t *testing.T) {
	var e threat_engine_t
	e.startAnalysis()
	e.onFrame([]byte{0x01, 0x02})
	var a = e.assess()
	var text = a.ReportText(0, 20)
	assert.LessOrEqual(t, len(text), 20)
}
