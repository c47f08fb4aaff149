package service

import (
	"fmt"
	"os"

	"github.com/procwarden/procwarden/config"
	"github.com/procwarden/procwarden/pkg/util"
	"github.com/procwarden/procwarden/scanner/domain"
	"github.com/prometheus/client_golang/prometheus"
	"go.uber.org/fx"
)

type Params struct {
	fx.In
	ScanConfig config.ScanConfig
	Source     domain.ProcessSource
	Digester   domain.Digester
	Repository domain.DetectionRepository `optional:"true"`
	Registerer prometheus.Registerer       `optional:"true"`
}

// NewService builds the scanner from configuration. The pattern and digest sets are
// fixed here for the lifetime of the process.
func NewService(params Params) (domain.Service, error) {
	return NewScannerFromConfig(params)
}

func NewScannerFromConfig(params Params) (*Scanner, error) {
	cfg := params.ScanConfig
	patterns, err := domain.NewPatternSet(cfg.SuspiciousNames)
	if err != nil {
		return nil, fmt.Errorf("build suspicious name patterns: %w", err)
	}
	known, err := cfg.LoadKnownDigests()
	if err != nil {
		return nil, fmt.Errorf("load known digests: %w", err)
	}
	digests, err := domain.NewDigestSet(known)
	if err != nil {
		return nil, fmt.Errorf("build known digest set: %w", err)
	}

	evaluator := NewEvaluator(EvaluatorConfig{
		Patterns:       patterns,
		Digests:        digests,
		Resolver:       params.Source,
		Digester:       params.Digester,
		Terminator:     params.Source,
		ProtectedNames: cfg.ProtectedNames,
		SelfPID:        int32(os.Getpid()),
	})
	machineID := util.GetMachineID()
	metricCollector := NewMetricCollector(machineID)
	registerer := params.Registerer
	if registerer == nil {
		registerer = prometheus.DefaultRegisterer
	}
	if err := registerer.Register(metricCollector); err != nil {
		return nil, fmt.Errorf("failed to register metric collector: %w", err)
	}

	return NewScanner(ScannerConfig{
		Enumerator:  params.Source,
		Evaluator:   evaluator,
		Backend:     params.Source.Name(),
		CyclePeriod: cfg.CyclePeriod,
		Patterns:    patterns,
		Digests:     digests,
		Metrics:     metricCollector,
		Repository:  params.Repository,
		MachineID:   machineID,
	}), nil
}
