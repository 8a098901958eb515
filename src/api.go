package rfcore

/*------------------------------------------------------------------
 *
 * Purpose:	Exported read-only accessors onto the otherwise
 *		package-private result types, for callers outside this
 *		package (cmd/rfcore-sim, host integrations).
 *
 *----------------------------------------------------------------*/

func (m modulation_e) String() string {
	switch m {
	case MODULATION_OOK:
		return "OOK"
	case MODULATION_FSK:
		return "FSK"
	case MODULATION_ASK:
		return "ASK"
	default:
		return "UNKNOWN"
	}
}

func (e encoding_e) String() string {
	switch e {
	case ENCODING_MANCHESTER:
		return "MANCHESTER"
	case ENCODING_PWM:
		return "PWM"
	case ENCODING_MILLER:
		return "MILLER"
	default:
		return "NRZ"
	}
}

func (h protocol_hypothesis_t) ModulationName() string        { return h.modulation.String() }
func (h protocol_hypothesis_t) ModulationConfidence() int     { return h.modulation_confidence }
func (h protocol_hypothesis_t) EncodingName() string          { return h.encoding.String() }
func (h protocol_hypothesis_t) EncodingConfidence() int       { return h.encoding_confidence }
func (h protocol_hypothesis_t) BaudRate() int                 { return h.baud_rate }
func (h protocol_hypothesis_t) TimingConfidence() int         { return h.timing_confidence }
func (h protocol_hypothesis_t) PreambleLengthBytes() int      { return h.preamble_length_bytes }
func (h protocol_hypothesis_t) PayloadBits() int              { return h.payload_bits }
func (h protocol_hypothesis_t) ChecksumBits() int             { return h.checksum_bits }
func (h protocol_hypothesis_t) FrameConfidence() int          { return h.frame_confidence }
func (h protocol_hypothesis_t) OverallConfidence() int        { return h.overall_confidence }

func (f fingerprint_t) UniqueHash() uint16       { return f.unique_hash }
func (f fingerprint_t) ClockStabilityPPM() uint8 { return f.clock_stability_ppm }
func (f fingerprint_t) DriftMean() fixed_t       { return f.drift_mean }
func (f fingerprint_t) DriftVariance() fixed_t   { return f.drift_variance }
