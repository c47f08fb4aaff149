package service

import (
	"context"
	"strings"

	"github.com/pkg/errors"
	"github.com/procwarden/procwarden/scanner/domain"
)

type EvaluatorConfig struct {
	Patterns   domain.PatternSet
	Digests    domain.DigestSet
	Resolver   domain.PathResolver
	Digester   domain.Digester
	Terminator domain.Terminator
	// ProtectedNames are executable names (compared case-insensitively, exact) that are
	// never terminated.
	ProtectedNames []string
	// SelfPID is never terminated. Zero disables the check.
	SelfPID int32
}

// Evaluator walks one process descriptor through the detection ladder: name match, path
// resolution, digest, known-digest membership and termination.
type Evaluator struct {
	patterns   domain.PatternSet
	digests    domain.DigestSet
	resolver   domain.PathResolver
	digester   domain.Digester
	terminator domain.Terminator
	protected  map[string]struct{}
	selfPID    int32
}

func NewEvaluator(cfg EvaluatorConfig) *Evaluator {
	protected := make(map[string]struct{}, len(cfg.ProtectedNames))
	for _, name := range cfg.ProtectedNames {
		protected[strings.ToLower(name)] = struct{}{}
	}
	return &Evaluator{
		patterns:   cfg.Patterns,
		digests:    cfg.Digests,
		resolver:   cfg.Resolver,
		digester:   cfg.Digester,
		terminator: cfg.Terminator,
		protected:  protected,
		selfPID:    cfg.SelfPID,
	}
}

// Evaluate never returns an error: every failure is folded into the verdict state.
func (e *Evaluator) Evaluate(ctx context.Context, d domain.ProcessDescriptor) domain.Verdict {
	v := domain.Verdict{Descriptor: d, State: domain.StateUnmatched}
	if !e.patterns.Matches(d) {
		return v
	}

	path := d.ExecutablePath
	if path == "" {
		resolved, err := e.resolver.ResolvePath(ctx, d)
		if err == nil && resolved == "" {
			err = errors.Wrapf(domain.ErrProcessUnopenable, "pid %d resolved to an empty path", d.PID)
		}
		if err != nil {
			v.State = domain.StateMatchedPathUnresolved
			v.Err = err
			return v
		}
		path = resolved
	}
	v.Path = path

	sum, err := e.digester.Digest(ctx, path)
	if err != nil {
		v.State = domain.StateMatchedDigestUnavailable
		v.Err = err
		return v
	}
	v.Digest = sum

	if !e.digests.Contains(sum) {
		v.State = domain.StateMatchedDigestClean
		return v
	}

	if err := e.checkProtected(d); err != nil {
		v.State = domain.StateMatchedDigestHitTerminationFailed
		v.Err = err
		return v
	}
	if err := e.terminator.Terminate(ctx, d.PID); err != nil {
		v.State = domain.StateMatchedDigestHitTerminationFailed
		v.Err = err
		return v
	}
	v.State = domain.StateMatchedDigestHitTerminated
	return v
}

func (e *Evaluator) checkProtected(d domain.ProcessDescriptor) error {
	if e.selfPID != 0 && d.PID == e.selfPID {
		return errors.Wrapf(domain.ErrProtectedProcess, "pid %d is the scanner itself", d.PID)
	}
	if _, ok := e.protected[strings.ToLower(d.ExecutableName)]; ok {
		return errors.Wrapf(domain.ErrProtectedProcess, "%s is in protected_names", d.ExecutableName)
	}
	return nil
}
