package rfcore

/*------------------------------------------------------------------
 *
 * Purpose:	Core facade (C8): owns every engine's state, routes
 *		ingest events, and serializes ingest/analyze access
 *		behind a single mutex per spec.md section 5.
 *
 *----------------------------------------------------------------*/

import "sync"

// CoreContext is the single entry point the host collaborator (the
// radio/RTOS side) drives from its capture, analysis, or UI thread.
// Every exported method acquires mu; ingest methods do constant-time
// work under the lock and never block on analysis completing.
type CoreContext struct {
	mu sync.Mutex

	config Config

	fingerprintEngine fingerprint_engine_t
	deviceTable       device_table_t
	temporalTable     temporal_table_t

	protocolEngine    protocol_infer_engine_t
	lastHypothesis    protocol_hypothesis_t

	threatEngine      threat_engine_t
	lastAssessment    threat_assessment_t
	haveAssessment    bool

	clusterStream kmeans_stream_t

	healthyFlag bool
}

// NewCoreContext builds a CoreContext already initialized to Idle.
// Of cfg, only LogLevel takes effect; the similarity weights and
// confidence bands it carries are stored but not consulted, since
// matching uses the package-level defaults from DefaultConfig().
func NewCoreContext(cfg Config) *CoreContext {
	var c = &CoreContext{}
	c.Init(cfg)
	return c
}

// Init (re)initializes every engine to Idle with empty state, per
// spec.md section 4.8.
func (c *CoreContext) Init(cfg Config) {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.config = cfg
	c.fingerprintEngine = fingerprint_engine_new()
	c.deviceTable = device_table_t{}
	c.temporalTable = temporal_table_t{}
	c.protocolEngine = protocol_infer_engine_t{}
	c.lastHypothesis = protocol_hypothesis_t{}
	c.threatEngine = threat_engine_t{}
	c.lastAssessment = threat_assessment_t{}
	c.haveAssessment = false
	c.clusterStream = kmeans_stream_t{}
	c.healthyFlag = true

	setLogLevel(cfg.LogLevel)
}

func (c *CoreContext) Teardown() {
	c.Init(c.config)
}

func (c *CoreContext) Healthy() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.healthyFlag
}

func (c *CoreContext) markUnhealthy(component, detail string) {
	c.healthyFlag = false
	logInvariantBroken(component, detail)
}

// ----------------------------------------------------------------
// Ingest surface: on_pulse / on_frame / on_rssi_sample / on_rssi_slope_sample
// ----------------------------------------------------------------

func (c *CoreContext) OnPulse(p Pulse) {
	c.mu.Lock()
	defer c.mu.Unlock()

	var before = c.protocolEngine.pulseCount
	c.protocolEngine.onPulse(newPulseT(p))
	if before == MAX_PULSE_COUNT {
		logSaturation("protocol_infer.pulses", MAX_PULSE_COUNT)
	}
}

func (c *CoreContext) OnFrame(f Frame) {
	c.mu.Lock()
	defer c.mu.Unlock()

	var ft = newFrameT(f)

	var beforeFrames = c.protocolEngine.frameCount
	c.protocolEngine.onFrame(ft)
	if beforeFrames == MAX_FRAME_COUNT {
		logSaturation("protocol_infer.frames", MAX_FRAME_COUNT)
	}

	c.fingerprintEngine.onFrame(ft)
	c.threatEngine.onFrame(ft.data[:ft.length])
}

// OnRSSISample feeds the fingerprint engine's higher-rate RSSI ring
// used for rise/fall slope analysis (spec.md section 4.5).
func (c *CoreContext) OnRSSISample(rssi uint8, timestampUs uint32) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.fingerprintEngine.onRSSISample(rssi)
}

// OnRSSISlopeSample is spec.md section 4.8's separately named ingest
// entry point; in this implementation it shares the fingerprint
// engine's single RSSI-sample ring with OnRSSISample rather than
// maintaining a second redundant ring.
func (c *CoreContext) OnRSSISlopeSample(rssi uint8, timestampUs uint32) {
	c.OnRSSISample(rssi, timestampUs)
}

// ----------------------------------------------------------------
// Control surface
// ----------------------------------------------------------------

func (c *CoreContext) StartFingerprinting() {
	c.mu.Lock()
	defer c.mu.Unlock()
	logStateTransition("fingerprinting", "idle", "sampling")
	c.fingerprintEngine.start()
}

func (c *CoreContext) StopFingerprinting() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.fingerprintEngine.stop()
	logStateTransition("fingerprinting", "sampling", "idle")
}

func (c *CoreContext) StartThreatAnalysis() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.threatEngine.startAnalysis()
}

func (c *CoreContext) StopThreatAnalysis() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.threatEngine.stopAnalysis()
}

// AssessThreat runs the composite scoring pipeline and caches the
// result for SnapshotThreatAssessment/ThreatReportText.
func (c *CoreContext) AssessThreat() threat_assessment_t {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.lastAssessment = c.threatEngine.assess()
	c.haveAssessment = true
	return c.lastAssessment
}

// AnalyzeProtocol runs the full C6 pipeline and caches the result.
func (c *CoreContext) AnalyzeProtocol() protocol_hypothesis_t {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.lastHypothesis = c.protocolEngine.analyze()
	return c.lastHypothesis
}

func (c *CoreContext) RunClustering(dataset []data_point_t, k int) kmeans_result_t {
	c.mu.Lock()
	defer c.mu.Unlock()
	return kmeans_run(dataset, k)
}

func (c *CoreContext) FindOptimalK(dataset []data_point_t, kMin, kMax int) kmeans_result_t {
	c.mu.Lock()
	defer c.mu.Unlock()
	return kmeans_find_optimal_k(dataset, kMin, kMax)
}

// AddClusterPoint feeds the streaming k-means variant (spec.md section
// 4.4); it re-clusters automatically every 50 points.
func (c *CoreContext) AddClusterPoint(x, y fixed_t, k int) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.clusterStream.k == 0 {
		c.clusterStream = kmeans_stream_new(k)
	}
	c.clusterStream.add(x, y)
}

// ----------------------------------------------------------------
// Snapshot/query surface
// ----------------------------------------------------------------

func (c *CoreContext) SnapshotFingerprintProgress() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.fingerprintEngine.progress()
}

// SnapshotFingerprint returns the zero record (NotAnalyzing) while the
// fingerprinting engine is sampling or before any analysis has
// completed; after StopFingerprinting it returns the analyzed result.
func (c *CoreContext) SnapshotFingerprint() fingerprint_t {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.fingerprintEngine.state == FP_STATE_SAMPLING {
		return fingerprint_t{}
	}
	return c.fingerprintEngine.result
}

// MatchFingerprint scans the device table and, on a match at Low
// confidence or better, updates the device's temporal drift record.
func (c *CoreContext) MatchFingerprint(fp fingerprint_t, now uint32) (confidence int, deviceID uint16, found bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	return matchAndTrack(&c.deviceTable, &c.temporalTable, fp, now)
}

// CounterfeitCheck is the spec.md section 4.5 forgery check against a
// claimed device identity.
func (c *CoreContext) CounterfeitCheck(fp fingerprint_t, claimedName string) (confidence int, forgeryIndicated bool, claimedFound bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	return counterfeitCheck(&c.deviceTable, fp, claimedName)
}

// RegisterDevice inserts a known-good fingerprint into the device
// table, returning its id or false on CapacityExceeded.
func (c *CoreContext) RegisterDevice(fp fingerprint_t, name string, now uint32) (uint16, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	var id, ok = c.deviceTable.insert(fp, name, now)
	if !ok {
		logSaturation("device_table", DEVICE_TABLE_CAPACITY)
	}
	return id, ok
}

func (c *CoreContext) DeleteDevice(id uint16) bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.deviceTable.delete(id)
}

func (c *CoreContext) DeviceTableSize() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.deviceTable.size()
}

func (c *CoreContext) SnapshotProtocolHypothesis() protocol_hypothesis_t {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.lastHypothesis
}

// SnapshotThreatAssessment returns the zero assessment (NotAnalyzing)
// until AssessThreat has run at least once.
func (c *CoreContext) SnapshotThreatAssessment() threat_assessment_t {
	c.mu.Lock()
	defer c.mu.Unlock()
	if !c.haveAssessment {
		return threat_assessment_t{}
	}
	return c.lastAssessment
}

func (c *CoreContext) ThreatReportText(nowUs uint32, maxLen int) string {
	c.mu.Lock()
	defer c.mu.Unlock()
	if !c.haveAssessment {
		return ""
	}
	return c.lastAssessment.ReportText(nowUs, maxLen)
}

func (c *CoreContext) SnapshotClusterResult() kmeans_result_t {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.clusterStream.snapshot()
}

// ----------------------------------------------------------------
// Saturation accessors (spec.md section 5: "snapshot flags record
// counts so the host can detect saturation")
// ----------------------------------------------------------------

func (c *CoreContext) PulseRingSaturated() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.protocolEngine.pulseCount >= MAX_PULSE_COUNT
}

func (c *CoreContext) FrameRingSaturated() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.protocolEngine.frameCount >= MAX_FRAME_COUNT
}

func (c *CoreContext) DeviceTableSaturated() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.deviceTable.size() >= DEVICE_TABLE_CAPACITY
}

func (c *CoreContext) ClusterStreamSaturated() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.clusterStream.saturated()
}
