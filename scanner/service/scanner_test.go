package service

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/procwarden/procwarden/config"
	"github.com/procwarden/procwarden/pkg/logger"
	"github.com/procwarden/procwarden/scanner/domain"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type scannerFixture struct {
	enumerator *domain.MockProcessEnumerator
	resolver   *domain.MockPathResolver
	digester   *domain.MockDigester
	terminator *domain.MockTerminator
	metrics    *MetricCollector
	scanner    *Scanner
}

func newScannerFixture(t *testing.T, period time.Duration) *scannerFixture {
	t.Helper()
	logger.InitLogger()
	patterns, err := domain.NewPatternSet([]string{"ntfsDump.exe", "echo"})
	require.NoError(t, err)
	digests, err := domain.NewDigestSet([]string{maliciousDigest})
	require.NoError(t, err)

	f := &scannerFixture{
		enumerator: domain.NewMockProcessEnumerator(t),
		resolver:   domain.NewMockPathResolver(t),
		digester:   domain.NewMockDigester(t),
		terminator: domain.NewMockTerminator(t),
		metrics:    NewMetricCollector("test-machine"),
	}
	evaluator := NewEvaluator(EvaluatorConfig{
		Patterns:   patterns,
		Digests:    digests,
		Resolver:   f.resolver,
		Digester:   f.digester,
		Terminator: f.terminator,
	})
	f.scanner = NewScanner(ScannerConfig{
		Enumerator:  f.enumerator,
		Evaluator:   evaluator,
		Backend:     "fake",
		CyclePeriod: period,
		Patterns:    patterns,
		Digests:     digests,
		Metrics:     f.metrics,
	})
	return f
}

func TestRunCycleMixedProcesses(t *testing.T) {
	f := newScannerFixture(t, time.Second)
	ctx := context.Background()
	f.enumerator.EXPECT().Enumerate(mock.Anything).Return([]domain.ProcessDescriptor{
		{PID: 1, ExecutableName: "systemd", ExecutablePath: "/usr/lib/systemd/systemd"},
		{PID: 20, ExecutableName: "ntfsDump.exe", ExecutablePath: "/tmp/ntfsDump.exe"},
		{PID: 21, ExecutableName: "echo"},
		{PID: 22, ExecutableName: "echo-helper", ExecutablePath: "/opt/echo-helper"},
		{PID: 23, ExecutableName: "EchoAC.exe", ExecutablePath: "/opt/EchoAC.exe"},
	}, nil).Once()
	f.digester.EXPECT().Digest(mock.Anything, "/tmp/ntfsDump.exe").Return(maliciousDigest, nil).Once()
	f.terminator.EXPECT().Terminate(mock.Anything, int32(20)).Return(nil).Once()
	f.resolver.EXPECT().ResolvePath(mock.Anything, mock.Anything).Return("", domain.ErrProcessUnopenable).Once()
	f.digester.EXPECT().Digest(mock.Anything, "/opt/echo-helper").Return(benignDigest, nil).Once()
	f.digester.EXPECT().Digest(mock.Anything, "/opt/EchoAC.exe").Return(maliciousDigest, nil).Once()
	f.terminator.EXPECT().Terminate(mock.Anything, int32(23)).Return(domain.ErrTerminationFailed).Once()

	report, err := f.scanner.RunCycle(ctx)
	require.NoError(t, err)
	require.NotNil(t, report)
	assert.NotEmpty(t, report.ID)
	assert.Equal(t, 5, report.Enumerated)
	assert.Equal(t, 5, report.Evaluated)
	assert.False(t, report.Cancelled)
	assert.Equal(t, 1, report.Counts[domain.ResultClean])
	assert.Equal(t, 2, report.Counts[domain.ResultFlaggedNoMatch])
	assert.Equal(t, 1, report.Counts[domain.ResultFlaggedAndTerminated])
	assert.Equal(t, 1, report.Counts[domain.ResultFlaggedTerminationFailed])
	assert.Equal(t, 4, report.Flagged())

	flagged := f.scanner.ListFlagged(ctx)
	require.Len(t, flagged, 4)
	assert.Equal(t, []int32{20, 21, 22, 23}, []int32{flagged[0].PID, flagged[1].PID, flagged[2].PID, flagged[3].PID})
	assert.Equal(t, domain.ResultFlaggedAndTerminated, flagged[0].Result)
	assert.Equal(t, report.ID, flagged[0].CycleID)
	assert.Contains(t, flagged[1].Reason, domain.ErrProcessUnopenable.Error())

	status := f.scanner.Status(ctx)
	assert.False(t, status.Running)
	assert.Equal(t, "fake", status.Backend)
	assert.Equal(t, uint64(1), status.CyclesCompleted)
	assert.Equal(t, 1, status.KnownDigests)
	assert.Same(t, report, status.LastCycle)

	assert.Equal(t, 1.0, testutil.ToFloat64(f.metrics.cycles))
	assert.Equal(t, 1.0, testutil.ToFloat64(f.metrics.results.WithLabelValues("flagged_and_terminated")))
	assert.Equal(t, 2.0, testutil.ToFloat64(f.metrics.results.WithLabelValues("flagged_no_match")))
}

func TestRunCycleTerminatesEachPIDOnce(t *testing.T) {
	f := newScannerFixture(t, time.Second)
	d := domain.ProcessDescriptor{PID: 30, ExecutableName: "ntfsDump.exe", ExecutablePath: "/tmp/ntfsDump.exe"}
	f.enumerator.EXPECT().Enumerate(mock.Anything).Return([]domain.ProcessDescriptor{d, d, d}, nil).Once()
	f.digester.EXPECT().Digest(mock.Anything, d.ExecutablePath).Return(maliciousDigest, nil).Once()
	f.terminator.EXPECT().Terminate(mock.Anything, int32(30)).Return(nil).Once()

	report, err := f.scanner.RunCycle(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 3, report.Enumerated)
	assert.Equal(t, 1, report.Evaluated)
}

func TestRunCycleReevaluatesAfterTerminationFailure(t *testing.T) {
	f := newScannerFixture(t, time.Second)
	d := domain.ProcessDescriptor{PID: 31, ExecutableName: "echo", ExecutablePath: "/opt/echo"}
	f.enumerator.EXPECT().Enumerate(mock.Anything).Return([]domain.ProcessDescriptor{d}, nil).Times(2)
	f.digester.EXPECT().Digest(mock.Anything, d.ExecutablePath).Return(maliciousDigest, nil).Times(2)
	f.terminator.EXPECT().Terminate(mock.Anything, int32(31)).Return(domain.ErrTerminationFailed).Once()
	f.terminator.EXPECT().Terminate(mock.Anything, int32(31)).Return(nil).Once()

	first, err := f.scanner.RunCycle(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 1, first.Counts[domain.ResultFlaggedTerminationFailed])

	second, err := f.scanner.RunCycle(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 1, second.Counts[domain.ResultFlaggedAndTerminated])
	assert.NotEqual(t, first.ID, second.ID)
}

func TestRunCycleEnumerationUnavailable(t *testing.T) {
	f := newScannerFixture(t, time.Second)
	f.enumerator.EXPECT().Enumerate(mock.Anything).Return([]domain.ProcessDescriptor{}, domain.ErrEnumerationUnavailable).Once()

	report, err := f.scanner.RunCycle(context.Background())
	require.NoError(t, err, "enumeration failure is not fatal")
	assert.ErrorIs(t, report.EnumerationErr, domain.ErrEnumerationUnavailable)
	assert.Zero(t, report.Evaluated)
	assert.Equal(t, 1.0, testutil.ToFloat64(f.metrics.enumFailures))
}

func TestRunCycleCancelledBeforeEnumeration(t *testing.T) {
	f := newScannerFixture(t, time.Second)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	report, err := f.scanner.RunCycle(ctx)
	require.NoError(t, err)
	assert.True(t, report.Cancelled)
	assert.Zero(t, report.Enumerated)
	assert.Equal(t, uint64(0), f.scanner.Status(ctx).CyclesCompleted)
}

func TestRunCycleCancelledBetweenProcesses(t *testing.T) {
	f := newScannerFixture(t, time.Second)
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	f.enumerator.EXPECT().Enumerate(mock.Anything).Return([]domain.ProcessDescriptor{
		{PID: 40, ExecutableName: "echo", ExecutablePath: "/opt/a"},
		{PID: 41, ExecutableName: "echo", ExecutablePath: "/opt/b"},
		{PID: 42, ExecutableName: "echo", ExecutablePath: "/opt/c"},
	}, nil).Once()
	f.digester.EXPECT().Digest(mock.Anything, "/opt/a").RunAndReturn(func(context.Context, string) (string, error) {
		cancel()
		return benignDigest, nil
	}).Once()

	report, err := f.scanner.RunCycle(ctx)
	require.NoError(t, err)
	assert.True(t, report.Cancelled)
	assert.Equal(t, 3, report.Enumerated)
	assert.Equal(t, 1, report.Evaluated)
	assert.Empty(t, f.scanner.ListFlagged(ctx), "a cancelled cycle does not replace the flagged registry")
}

func TestRunCycleRejectsConcurrentCycle(t *testing.T) {
	f := newScannerFixture(t, time.Second)
	entered := make(chan struct{})
	release := make(chan struct{})
	f.enumerator.EXPECT().Enumerate(mock.Anything).RunAndReturn(func(context.Context) ([]domain.ProcessDescriptor, error) {
		close(entered)
		<-release
		return []domain.ProcessDescriptor{}, nil
	}).Once()

	var wg sync.WaitGroup
	wg.Add(1)
	go func() {
		defer wg.Done()
		_, err := f.scanner.RunCycle(context.Background())
		assert.NoError(t, err)
	}()

	<-entered
	report, err := f.scanner.RunCycle(context.Background())
	assert.Nil(t, report)
	assert.ErrorIs(t, err, domain.ErrCycleInFlight)
	close(release)
	wg.Wait()
}

func TestStartStop(t *testing.T) {
	f := newScannerFixture(t, 10*time.Millisecond)
	ctx := context.Background()
	f.enumerator.EXPECT().Enumerate(mock.Anything).Return([]domain.ProcessDescriptor{}, nil)

	require.NoError(t, f.scanner.Start(ctx))
	assert.ErrorIs(t, f.scanner.Start(ctx), domain.ErrAlreadyRunning)
	assert.True(t, f.scanner.Status(ctx).Running)
	assert.Equal(t, 1.0, testutil.ToFloat64(f.metrics.running))

	assert.Eventually(t, func() bool {
		return f.scanner.Status(ctx).CyclesCompleted >= 3
	}, 2*time.Second, 5*time.Millisecond)

	stopCtx, cancel := context.WithTimeout(ctx, time.Second)
	defer cancel()
	require.NoError(t, f.scanner.Stop(stopCtx))
	assert.False(t, f.scanner.Status(ctx).Running)
	assert.ErrorIs(t, f.scanner.Stop(ctx), domain.ErrNotRunning)
	assert.Equal(t, 0.0, testutil.ToFloat64(f.metrics.running))

	completed := f.scanner.Status(ctx).CyclesCompleted
	time.Sleep(50 * time.Millisecond)
	assert.Equal(t, completed, f.scanner.Status(ctx).CyclesCompleted, "no cycles after Stop")
}

func TestRunExitsOnCancel(t *testing.T) {
	f := newScannerFixture(t, time.Hour)
	f.enumerator.EXPECT().Enumerate(mock.Anything).Return([]domain.ProcessDescriptor{}, nil).Once()
	ctx, cancel := context.WithCancel(context.Background())

	done := make(chan struct{})
	go func() {
		defer close(done)
		f.scanner.Run(ctx)
	}()
	assert.Eventually(t, func() bool {
		return f.scanner.Status(ctx).CyclesCompleted == 1
	}, time.Second, 5*time.Millisecond)
	cancel()

	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("Run did not return after cancellation")
	}
}

type fakeSource struct {
	*domain.MockProcessEnumerator
	*domain.MockPathResolver
	*domain.MockTerminator
}

func (fakeSource) Name() string {
	return "fake"
}

func TestNewScannerFromConfig(t *testing.T) {
	src := fakeSource{
		MockProcessEnumerator: domain.NewMockProcessEnumerator(t),
		MockPathResolver:      domain.NewMockPathResolver(t),
		MockTerminator:        domain.NewMockTerminator(t),
	}
	reg := prometheus.NewRegistry()
	s, err := NewScannerFromConfig(Params{
		ScanConfig: config.ScanConfig{
			CyclePeriod:     time.Second,
			SuspiciousNames: []string{"echo", "ECHO"},
			KnownDigests:    []string{maliciousDigest},
		},
		Source:     src,
		Digester:   domain.NewMockDigester(t),
		Registerer: reg,
	})
	require.NoError(t, err)

	status := s.Status(context.Background())
	assert.Equal(t, "fake", status.Backend)
	assert.Equal(t, []string{"echo"}, status.Patterns)
	assert.Equal(t, 1, status.KnownDigests)
	assert.Len(t, status.DigestSetFingerprint, 64)

	families, err := reg.Gather()
	require.NoError(t, err)
	names := []string{}
	for _, mf := range families {
		names = append(names, mf.GetName())
	}
	assert.Contains(t, names, "procwarden_scan_results_total")
	assert.Contains(t, names, "procwarden_scanner_running")

	_, err = NewScannerFromConfig(Params{
		ScanConfig: config.ScanConfig{CyclePeriod: time.Second, KnownDigests: []string{"nope"}},
		Source:     src,
		Digester:   domain.NewMockDigester(t),
		Registerer: prometheus.NewRegistry(),
	})
	assert.Error(t, err)
}

func TestNewScannerFromConfigDuplicateRegistration(t *testing.T) {
	reg := prometheus.NewRegistry()
	params := Params{
		ScanConfig: config.ScanConfig{CyclePeriod: time.Second},
		Source: fakeSource{
			MockProcessEnumerator: domain.NewMockProcessEnumerator(t),
			MockPathResolver:      domain.NewMockPathResolver(t),
			MockTerminator:        domain.NewMockTerminator(t),
		},
		Digester:   domain.NewMockDigester(t),
		Registerer: reg,
	}
	_, err := NewScannerFromConfig(params)
	require.NoError(t, err)
	_, err = NewScannerFromConfig(params)
	var already prometheus.AlreadyRegisteredError
	assert.True(t, errors.As(err, &already), "second registration on the same registry must fail: %v", err)
}

func TestRunCycleStoresDetections(t *testing.T) {
	f := newScannerFixture(t, time.Second)
	repo := domain.NewMockDetectionRepository(t)
	f.scanner.repo = repo
	f.scanner.machineID = "host-a"

	f.enumerator.EXPECT().Enumerate(mock.Anything).Return([]domain.ProcessDescriptor{
		{PID: 1, ExecutableName: "systemd", ExecutablePath: "/usr/lib/systemd/systemd"},
		{PID: 20, ExecutableName: "ntfsDump.exe", ExecutablePath: "/tmp/ntfsDump.exe"},
	}, nil).Once()
	f.digester.EXPECT().Digest(mock.Anything, "/tmp/ntfsDump.exe").Return(maliciousDigest, nil).Once()
	f.terminator.EXPECT().Terminate(mock.Anything, int32(20)).Return(nil).Once()

	var stored []*domain.Detection
	repo.EXPECT().InsertDetections(mock.Anything, mock.Anything).
		Run(func(_ context.Context, detections []*domain.Detection) { stored = detections }).
		Return(nil).Once()

	report, err := f.scanner.RunCycle(context.Background())
	require.NoError(t, err)
	require.Len(t, stored, 1, "only flagged processes are stored")
	assert.Equal(t, int32(20), stored[0].PID)
	assert.Equal(t, "host-a", stored[0].MachineID)
	assert.Equal(t, report.ID, stored[0].CycleID)
	assert.Equal(t, domain.ResultFlaggedAndTerminated, stored[0].Result)
	assert.Equal(t, maliciousDigest, stored[0].Digest)
}

func TestRunCycleSurvivesDetectionStoreFailure(t *testing.T) {
	f := newScannerFixture(t, time.Second)
	repo := domain.NewMockDetectionRepository(t)
	f.scanner.repo = repo

	f.enumerator.EXPECT().Enumerate(mock.Anything).Return([]domain.ProcessDescriptor{
		{PID: 21, ExecutableName: "echo", ExecutablePath: "/bin/echo"},
	}, nil).Once()
	f.digester.EXPECT().Digest(mock.Anything, "/bin/echo").Return(benignDigest, nil).Once()
	repo.EXPECT().InsertDetections(mock.Anything, mock.Anything).Return(errors.New("connection refused")).Once()

	report, err := f.scanner.RunCycle(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 1, report.Counts[domain.ResultFlaggedNoMatch])
	assert.Len(t, f.scanner.ListFlagged(context.Background()), 1)
	assert.Equal(t, 1.0, testutil.ToFloat64(f.metrics.storeFailures))
}

func TestRunCycleSkipsStoreWithoutFlagged(t *testing.T) {
	f := newScannerFixture(t, time.Second)
	// no expectations: any call fails the test
	f.scanner.repo = domain.NewMockDetectionRepository(t)
	f.enumerator.EXPECT().Enumerate(mock.Anything).Return([]domain.ProcessDescriptor{
		{PID: 1, ExecutableName: "systemd"},
	}, nil).Once()

	_, err := f.scanner.RunCycle(context.Background())
	require.NoError(t, err)
}

func TestQueryDetections(t *testing.T) {
	f := newScannerFixture(t, time.Second)
	ctx := context.Background()

	err := f.scanner.QueryDetections(ctx, &domain.QueryDetectionOptions{})
	assert.ErrorIs(t, err, domain.ErrDetectionStoreDisabled)

	repo := domain.NewMockDetectionRepository(t)
	f.scanner.repo = repo
	repo.EXPECT().QueryDetections(mock.Anything, mock.Anything).
		RunAndReturn(func(_ context.Context, opt *domain.QueryDetectionOptions) error {
			assert.Equal(t, int64(domain.DefaultDetectionQueryLimit), opt.Limit)
			opt.Result = []*domain.Detection{{PID: 7}}
			return nil
		}).Once()

	opt := &domain.QueryDetectionOptions{}
	require.NoError(t, f.scanner.QueryDetections(ctx, opt))
	require.Len(t, opt.Result, 1)
	assert.Equal(t, int32(7), opt.Result[0].PID)
}
