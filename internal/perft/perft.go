// Package perft counts move-tree leaves in parallel, one root move per
// work item.
package perft

import (
	"context"
	"fmt"
	"sort"

	"github.com/lgbarn/chessrules-go/internal/chess"
	"github.com/lgbarn/chessrules-go/internal/config"
	"github.com/lgbarn/chessrules-go/internal/engine"
	"github.com/lgbarn/chessrules-go/internal/worker"
)

// Options control a parallel run.
type Options struct {
	Workers int
	Rules   config.Rules
}

// Result holds the total and the per-root-move breakdown, sorted by move.
type Result struct {
	Nodes  uint64
	Divide []engine.DivideEntry
}

// Run counts the leaves of the legal move tree of b to depth. Each root
// move is searched on its own clone, so b is never modified.
func Run(ctx context.Context, b *chess.Board, depth int, opts Options) (Result, error) {
	if depth < 1 {
		return Result{Nodes: 1}, nil
	}

	gen := engine.NewGenerator(engine.WithRules(opts.Rules))
	roots := gen.Generate(b)
	if len(roots) == 0 {
		return Result{}, nil
	}

	process := func(item worker.WorkItem) worker.ProcessResult {
		return worker.ProcessResult{
			Index: item.Index,
			Label: item.Label,
			Nodes: engine.Perft(item.Board, item.Depth, opts.Rules),
		}
	}
	pool := worker.NewPool(process,
		worker.WithWorkers(opts.Workers),
		worker.WithBufferSize(len(roots)),
	)
	pool.Start(ctx)

	for i, m := range roots {
		child := b.Clone()
		engine.MakeMove(child, m)
		pool.Submit(worker.WorkItem{Index: i, Label: m.String(), Board: child, Depth: depth - 1})
	}
	go pool.Close()

	var res Result
	var firstErr error
	for r := range pool.Results() {
		if r.Err != nil {
			if firstErr == nil {
				firstErr = fmt.Errorf("perft %s: %w", r.Label, r.Err)
			}
			continue
		}
		res.Nodes += r.Nodes
		res.Divide = append(res.Divide, engine.DivideEntry{Move: r.Label, Nodes: r.Nodes})
	}
	if firstErr != nil {
		return Result{}, firstErr
	}

	sort.Slice(res.Divide, func(i, j int) bool { return res.Divide[i].Move < res.Divide[j].Move })
	return res, nil
}
