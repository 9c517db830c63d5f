package flows

import "context"

// RunDestroy executes the destroy sequence: before_destroy, nil commit,
// local state clear, after_destroy. There is no validation gate; the flow
// only fails on a commit error, in which case local state is left untouched
// so the session still reads as active.
func RunDestroy(ctx context.Context, deps DestroyDeps) error {
	deps.BeforeDestroy(ctx)

	if err := deps.Commit(ctx); err != nil {
		return err
	}

	deps.Clear()
	deps.AfterDestroy(ctx)

	return nil
}
