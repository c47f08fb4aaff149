package service

import (
	"context"
	"sort"
	"sync"
	"sync/atomic"
	"time"

	"github.com/procwarden/procwarden/pkg/logger"
	"github.com/procwarden/procwarden/pkg/util"
	"github.com/procwarden/procwarden/scanner/domain"
	"github.com/rs/xid"
	"github.com/rs/zerolog"
)

// Event names carried in the "event" field of scanner log lines.
const (
	EventProcessFlagged         = "process_flagged"
	EventProcessTerminated      = "process_terminated"
	EventTerminationFailed      = "termination_failed"
	EventDigestUnavailable      = "digest_unavailable"
	EventProcessUnopenable      = "process_unopenable"
	EventEnumerationUnavailable = "enumeration_unavailable"
	EventCycleCompleted         = "cycle_completed"
	EventScannerStarted         = "scanner_started"
	EventScannerStopped         = "scanner_stopped"
	EventDetectionStoreFailed   = "detection_store_failed"
)

// Scanner runs enumerate-and-evaluate cycles. At most one cycle is in flight at any time,
// whether it was started by the background loop or on demand.
type Scanner struct {
	enumerator domain.ProcessEnumerator
	evaluator  *Evaluator
	backend    string
	period     time.Duration
	patterns   domain.PatternSet
	digests    domain.DigestSet
	metrics    *MetricCollector
	repo       domain.DetectionRepository
	machineID  string
	now        func() time.Time

	cycleMu         sync.Mutex
	lastCycle       atomic.Pointer[domain.CycleReport]
	cyclesCompleted atomic.Uint64
	flagged         *util.GenericMap[int32, domain.FlaggedProcess]

	loopMu sync.Mutex
	cancel context.CancelFunc
	done   chan struct{}
}

type ScannerConfig struct {
	Enumerator  domain.ProcessEnumerator
	Evaluator   *Evaluator
	Backend     string
	CyclePeriod time.Duration
	Patterns    domain.PatternSet
	Digests     domain.DigestSet
	Metrics     *MetricCollector
	// Repository is optional; without it detections are only logged.
	Repository domain.DetectionRepository
	MachineID  string
}

func NewScanner(cfg ScannerConfig) *Scanner {
	if cfg.MachineID == "" {
		cfg.MachineID = util.GetMachineID()
	}
	if cfg.Metrics == nil {
		cfg.Metrics = NewMetricCollector(cfg.MachineID)
	}
	return &Scanner{
		enumerator: cfg.Enumerator,
		evaluator:  cfg.Evaluator,
		backend:    cfg.Backend,
		period:     cfg.CyclePeriod,
		patterns:   cfg.Patterns,
		digests:    cfg.Digests,
		metrics:    cfg.Metrics,
		repo:       cfg.Repository,
		machineID:  cfg.MachineID,
		now:        time.Now,
		flagged:    util.NewGenericMap[int32, domain.FlaggedProcess](),
	}
}

// RunCycle performs one pass over a fresh process snapshot. It returns ErrCycleInFlight
// without doing anything when another cycle is running. Cancellation is checked before
// enumerating and before each process; a cancelled cycle returns its partial report.
func (s *Scanner) RunCycle(ctx context.Context) (*domain.CycleReport, error) {
	if !s.cycleMu.TryLock() {
		return nil, domain.ErrCycleInFlight
	}
	defer s.cycleMu.Unlock()

	report := domain.NewCycleReport(xid.New().String(), s.now())
	log := logger.Logger(ctx).With().Str("cycle_id", report.ID).Logger()

	if ctx.Err() != nil {
		report.Cancelled = true
		s.finishCycle(ctx, &log, report, nil)
		return report, nil
	}

	descriptors, err := s.enumerator.Enumerate(ctx)
	if err != nil {
		report.EnumerationErr = err
		s.metrics.ObserveEnumerationFailure()
		log.Error().Str("event", EventEnumerationUnavailable).Err(err).Msg("cannot snapshot the process table, skipping cycle")
		s.finishCycle(ctx, &log, report, nil)
		return report, nil
	}
	report.Enumerated = len(descriptors)

	flagged := []domain.FlaggedProcess{}
	seen := make(map[int32]struct{}, len(descriptors))
	for _, d := range descriptors {
		if ctx.Err() != nil {
			report.Cancelled = true
			break
		}
		// a snapshot may list a pid twice; it is evaluated and terminated at most once
		if _, dup := seen[d.PID]; dup {
			continue
		}
		seen[d.PID] = struct{}{}

		v := s.evaluator.Evaluate(ctx, d)
		result := v.Result()
		report.Evaluated++
		report.Counts[result]++
		s.metrics.ObserveResult(result)
		logVerdict(&log, v)
		if result.Flagged() {
			flagged = append(flagged, toFlaggedProcess(v, report.ID, s.now()))
		}
	}

	s.finishCycle(ctx, &log, report, flagged)
	return report, nil
}

func (s *Scanner) finishCycle(ctx context.Context, log *zerolog.Logger, report *domain.CycleReport, flagged []domain.FlaggedProcess) {
	report.FinishedAt = s.now()
	s.lastCycle.Store(report)
	if report.Cancelled {
		log.Info().Msgf("cycle cancelled after %d of %d processes", report.Evaluated, report.Enumerated)
		return
	}
	s.cyclesCompleted.Add(1)
	s.metrics.ObserveCycle(report)
	if report.EnumerationErr == nil {
		registry := make(map[int32]domain.FlaggedProcess, len(flagged))
		for _, f := range flagged {
			registry[f.PID] = f
		}
		s.flagged.Replace(registry)
		s.storeDetections(ctx, log, flagged)
	}
	log.Info().
		Str("event", EventCycleCompleted).
		Int("enumerated", report.Enumerated).
		Int("evaluated", report.Evaluated).
		Int("flagged", report.Flagged()).
		Int("terminated", report.Counts[domain.ResultFlaggedAndTerminated]).
		Dur("duration", report.Duration()).
		Msg("scan cycle completed")
}

func (s *Scanner) storeDetections(ctx context.Context, log *zerolog.Logger, flagged []domain.FlaggedProcess) {
	if s.repo == nil || len(flagged) == 0 {
		return
	}
	detections := make([]*domain.Detection, 0, len(flagged))
	for _, f := range flagged {
		detections = append(detections, domain.NewDetection(f, s.machineID))
	}
	if err := s.repo.InsertDetections(ctx, detections); err != nil {
		s.metrics.ObserveStoreFailure()
		log.Error().Str("event", EventDetectionStoreFailed).Int("detections", len(detections)).Err(err).
			Msg("cannot write detections to the audit store")
	}
}

func logVerdict(log *zerolog.Logger, v domain.Verdict) {
	if v.State == domain.StateUnmatched {
		return
	}
	d := v.Descriptor
	log.Info().
		Str("event", EventProcessFlagged).
		Int32("pid", d.PID).
		Str("name", d.ExecutableName).
		Str("result", v.Result().String()).
		Msgf("process %s matches a suspicious name", d)

	switch v.State {
	case domain.StateMatchedPathUnresolved:
		log.Warn().Str("event", EventProcessUnopenable).Int32("pid", d.PID).Err(v.Err).
			Msgf("cannot resolve executable of %s", d)
	case domain.StateMatchedDigestUnavailable:
		log.Warn().Str("event", EventDigestUnavailable).Int32("pid", d.PID).Str("path", v.Path).Err(v.Err).
			Msgf("cannot digest executable of %s", d)
	case domain.StateMatchedDigestHitTerminated:
		log.Warn().Str("event", EventProcessTerminated).Int32("pid", d.PID).Str("path", v.Path).Str("digest", v.Digest).
			Msgf("terminated %s running a known malicious image", d)
	case domain.StateMatchedDigestHitTerminationFailed:
		log.Error().Str("event", EventTerminationFailed).Int32("pid", d.PID).Str("path", v.Path).Str("digest", v.Digest).Err(v.Err).
			Msgf("failed to terminate %s running a known malicious image", d)
	}
}

func toFlaggedProcess(v domain.Verdict, cycleID string, seenAt time.Time) domain.FlaggedProcess {
	f := domain.FlaggedProcess{
		PID:     v.Descriptor.PID,
		Name:    v.Descriptor.ExecutableName,
		Path:    v.Path,
		Digest:  v.Digest,
		Result:  v.Result(),
		State:   v.State,
		CycleID: cycleID,
		SeenAt:  seenAt,
	}
	if v.Err != nil {
		f.Reason = v.Err.Error()
	}
	return f
}

// Run repeats cycles with CyclePeriod between the end of one cycle and the start of the
// next, until ctx is cancelled.
func (s *Scanner) Run(ctx context.Context) {
	log := logger.Logger(ctx)
	log.Info().Str("event", EventScannerStarted).Str("backend", s.backend).Dur("cycle_period", s.period).
		Msgf("scanner started with %d patterns and %d known digests", s.patterns.Len(), s.digests.Len())
	defer func() {
		log.Info().Str("event", EventScannerStopped).Msg("scanner stopped")
	}()

	timer := time.NewTimer(s.period)
	defer timer.Stop()
	for {
		if _, err := s.RunCycle(ctx); err != nil {
			log.Debug().Err(err).Msg("skipping scheduled cycle")
		}
		timer.Reset(s.period)
		select {
		case <-ctx.Done():
			return
		case <-timer.C:
		}
	}
}

// Start launches Run in the background. The loop outlives ctx; use Stop to end it.
func (s *Scanner) Start(ctx context.Context) error {
	s.loopMu.Lock()
	defer s.loopMu.Unlock()
	if s.cancel != nil {
		return domain.ErrAlreadyRunning
	}
	loopCtx, cancel := context.WithCancel(context.WithoutCancel(ctx))
	done := make(chan struct{})
	s.cancel = cancel
	s.done = done
	s.metrics.SetRunning(true)
	go func() {
		defer close(done)
		s.Run(loopCtx)
	}()
	return nil
}

// Stop cancels the loop and waits until the in-flight cycle, if any, has unwound or ctx
// expires.
func (s *Scanner) Stop(ctx context.Context) error {
	s.loopMu.Lock()
	if s.cancel == nil {
		s.loopMu.Unlock()
		return domain.ErrNotRunning
	}
	s.cancel()
	done := s.done
	s.cancel = nil
	s.done = nil
	s.metrics.SetRunning(false)
	s.loopMu.Unlock()

	select {
	case <-done:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

func (s *Scanner) Status(ctx context.Context) domain.Status {
	s.loopMu.Lock()
	running := s.cancel != nil
	s.loopMu.Unlock()
	return domain.Status{
		Running:              running,
		Backend:              s.backend,
		CyclePeriod:          s.period,
		Patterns:             s.patterns.Patterns(),
		KnownDigests:         s.digests.Len(),
		DigestSetFingerprint: s.digests.Fingerprint(),
		CyclesCompleted:      s.cyclesCompleted.Load(),
		LastCycle:            s.lastCycle.Load(),
	}
}

// ListFlagged returns the processes flagged by the latest completed cycle, ordered by pid.
func (s *Scanner) ListFlagged(ctx context.Context) []domain.FlaggedProcess {
	out := []domain.FlaggedProcess{}
	s.flagged.Range(func(_ int32, f domain.FlaggedProcess) bool {
		out = append(out, f)
		return true
	})
	sort.Slice(out, func(i, j int) bool { return out[i].PID < out[j].PID })
	return out
}

// QueryDetections reads the audit trail written by completed cycles.
func (s *Scanner) QueryDetections(ctx context.Context, opt *domain.QueryDetectionOptions) error {
	if s.repo == nil {
		return domain.ErrDetectionStoreDisabled
	}
	if opt.Limit <= 0 {
		opt.Limit = domain.DefaultDetectionQueryLimit
	}
	return s.repo.QueryDetections(ctx, opt)
}
