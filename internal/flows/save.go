package flows

import "context"

// RunSave executes the save sequence: validation gate, record resolution,
// the four-phase callback bracket, persistence commit, then the newness
// flip. The bool reports whether validation passed; the error carries only
// external resolver/commit failures, unchanged.
//
// A false validation outcome stops the flow before any callback or commit.
// A resolver error does the same. A commit error surfaces after the phases
// have run; the caller owns rolling back the resolved record.
func RunSave(ctx context.Context, deps SaveDeps) (bool, error) {
	if !deps.Validate(ctx) {
		return false, nil
	}

	if err := deps.Resolve(ctx); err != nil {
		return false, err
	}

	deps.BeforeSave(ctx)
	if deps.IsNew {
		deps.BeforeCreate(ctx)
		deps.AfterCreate(ctx)
	} else {
		deps.BeforeUpdate(ctx)
		deps.AfterUpdate(ctx)
	}
	deps.AfterSave(ctx)

	if err := deps.Commit(ctx); err != nil {
		return false, err
	}

	deps.MarkSaved()
	return true, nil
}
