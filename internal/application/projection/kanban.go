package projection

import (
	"github.com/zenithhr/procurement-workflow/internal/domain/entity"
	"github.com/zenithhr/procurement-workflow/internal/domain/stage"
)

// Board is the kanban grouping of a request snapshot. Every display stage is
// present as a key even when no request occupies it.
type Board map[stage.Stage][]*entity.PurchaseRequest

// Project groups requests by their literal current stage into the fixed
// display taxonomy. Pure and side-effect free; safe to call concurrently
// over the same snapshot. Requests at an unregistered stage are dropped
// rather than given a column of their own.
func Project(requests []*entity.PurchaseRequest) Board {
	board := make(Board, len(stage.DisplayStages))
	for _, s := range stage.DisplayStages {
		board[s] = []*entity.PurchaseRequest{}
	}

	for _, req := range requests {
		s := stage.Stage(req.CurrentStage)
		if _, ok := board[s]; !ok {
			continue
		}
		board[s] = append(board[s], req)
	}

	return board
}

// Columns returns the board's stages in display order. Kept separate from the
// grouping so callers can render deterministically from the map.
func Columns() []stage.Stage {
	cols := make([]stage.Stage, len(stage.DisplayStages))
	copy(cols, stage.DisplayStages)
	return cols
}
