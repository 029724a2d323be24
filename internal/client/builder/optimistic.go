package builder

// optimisticOp applies a tentative state patch immediately and keeps
// the inverse around so a failed request can undo exactly that patch
// and nothing else. apply returns its own undo so the two stay paired
// at the call site.
type optimisticOp struct {
	undo func()
}

func applyOptimistic(apply func() (undo func())) optimisticOp {
	return optimisticOp{undo: apply()}
}

func (op optimisticOp) rollback() {
	if op.undo != nil {
		op.undo()
	}
}
