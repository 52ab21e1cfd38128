package ops

import (
	"context"
	stderrors "errors"

	"github.com/pawlygon/shapekit/pkg/errors"
	"github.com/pawlygon/shapekit/pkg/pending"
	"github.com/pawlygon/shapekit/pkg/roster"
	"github.com/pawlygon/shapekit/pkg/scene"
)

// Runner binds the operator payloads to their stateful environment: the
// roster set that names expected lists, and the pending store carrying the
// check → fill handshake. The CLI and the HTTP server share one Runner so
// the handshake behaves identically on both surfaces.
type Runner struct {
	pending pending.Store
	rosters *roster.Set
}

// NewRunner creates a runner over the given pending store and roster set.
func NewRunner(p pending.Store, rs *roster.Set) *Runner {
	return &Runner{pending: p, rosters: rs}
}

// Rosters returns the runner's roster set.
func (r *Runner) Rosters() *roster.Set { return r.rosters }

// Check compares the object against the named roster and records the result
// in the pending store: a report when keys are missing, a cleared slot when
// all are present. Re-checking always replaces the previous report.
func (r *Runner) Check(ctx context.Context, sceneID string, sc *scene.Scene, object, rosterName string) (*CheckResult, error) {
	list, ok := r.rosters.List(rosterName)
	if !ok {
		return nil, errors.New(errors.ErrCodeInvalidRoster, "no roster named %q", rosterName)
	}

	res, err := CheckRequest{Object: object, Roster: rosterName, Expected: list.Keys}.Apply(sc)
	if err != nil {
		return nil, err
	}

	key := pending.TargetKey(sceneID, res.Object)
	if len(res.Missing) == 0 {
		if err := r.pending.Clear(ctx, key); err != nil {
			return nil, errors.Wrap(errors.ErrCodeStorage, err, "clear pending report")
		}
		return res, nil
	}
	rep := pending.NewReport(sceneID, res.Object, rosterName, res.Missing)
	if err := r.pending.Set(ctx, rep); err != nil {
		return nil, errors.Wrap(errors.ErrCodeStorage, err, "store pending report")
	}
	return res, nil
}

// Fill creates the keys recorded by the last check for this target and
// clears the report. Without a pending report the fill is blocked.
func (r *Runner) Fill(ctx context.Context, sceneID string, sc *scene.Scene, object string) (*FillResult, error) {
	o, err := resolveObject(sc, object)
	if err != nil {
		return nil, err
	}

	key := pending.TargetKey(sceneID, o.Name)
	rep, err := r.pending.Get(ctx, key)
	if stderrors.Is(err, pending.ErrNotFound) {
		return nil, errors.New(errors.ErrCodePreconditionNoPending,
			"no pending missing list for %q: run check first", o.Name)
	}
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeStorage, err, "load pending report")
	}

	res, err := FillRequest{Object: o.Name, Missing: rep.Missing}.Apply(sc)
	if err != nil {
		return nil, err
	}
	if err := r.pending.Clear(ctx, key); err != nil {
		return nil, errors.Wrap(errors.ErrCodeStorage, err, "clear pending report")
	}
	return res, nil
}

// Pending returns the pending report for the target, or nil when none is
// recorded. UIs use it to show what a fill would create.
func (r *Runner) Pending(ctx context.Context, sceneID, object string) (*pending.Report, error) {
	rep, err := r.pending.Get(ctx, pending.TargetKey(sceneID, object))
	if stderrors.Is(err, pending.ErrNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeStorage, err, "load pending report")
	}
	return rep, nil
}

// SplitPair resolves a named roster pair ("Left/Right") into a split
// request for the given object and key.
func (r *Runner) SplitPair(sc *scene.Scene, object, key string, pair roster.Pair) (*SplitResult, error) {
	return SplitRequest{Object: object, Key: key, GroupA: pair.A, GroupB: pair.B}.Apply(sc)
}
