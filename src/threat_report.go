package rfcore

/*------------------------------------------------------------------
 *
 * Purpose:	Human-readable threat report, backing spec.md section
 *		6's threat.report_text(&buf, max). The format isn't
 *		pinned down by spec.md's body, so it's grounded on the
 *		teacher's CSV-log diagnostic conventions: a short,
 *		field-labeled summary rather than free prose.
 *
 *----------------------------------------------------------------*/

import (
	"fmt"
	"strings"
)

// ReportText renders a threat_assessment_t as a bounded multi-line
// summary. If the rendered text exceeds maxLen, it is truncated
// rather than returning an error -- report_text is a display aid, not
// a parsed format.
func (a threat_assessment_t) ReportText(nowUs uint32, maxLen int) string {
	var b strings.Builder
	fmt.Fprintf(&b, "threat report @ %s\n", formatReportTimestamp(nowUs))
	fmt.Fprintf(&b, "level:     %s (score %d/1000)\n", a.level, a.score)
	fmt.Fprintf(&b, "entropy:   %.2f bits/byte\n", fixed_to_float(a.entropy))
	fmt.Fprintf(&b, "static:    %.1f%% of bits constant (preamble %d bytes)\n", fixed_to_float(a.static_ratio), a.preamble_len)
	if a.crc_fit.found {
		fmt.Fprintf(&b, "crc:       %s detected at offset len-%d\n", a.crc_fit.variant_name, a.crc_fit.position)
	} else {
		fmt.Fprintf(&b, "crc:       none detected\n")
	}
	if len(a.rolling_positions) > 0 {
		fmt.Fprintf(&b, "rolling:   flagged at byte positions %v\n", a.rolling_positions)
	} else {
		fmt.Fprintf(&b, "rolling:   none detected\n")
	}
	if a.exact_replay {
		fmt.Fprintf(&b, "replay:    %d duplicate frame(s) observed\n", len(a.replay_indices))
	} else {
		fmt.Fprintf(&b, "replay:    none observed\n")
	}

	var text = b.String()
	if maxLen > 0 && len(text) > maxLen {
		text = text[:maxLen]
	}
	return text
}
