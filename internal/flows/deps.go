package flows

import "context"

// SaveDeps captures the save flow dependencies. Phase closures are always
// non-nil; the root package binds them to the frozen callback registry.
type SaveDeps struct {
	// IsNew is the session's newness as of the start of the save call. The
	// create/update branch is decided from this value once and never
	// re-evaluated mid-sequence.
	IsNew bool

	Validate func(ctx context.Context) bool
	Resolve  func(ctx context.Context) error
	Commit   func(ctx context.Context) error

	BeforeSave   func(ctx context.Context)
	BeforeCreate func(ctx context.Context)
	AfterCreate  func(ctx context.Context)
	BeforeUpdate func(ctx context.Context)
	AfterUpdate  func(ctx context.Context)
	AfterSave    func(ctx context.Context)

	MarkSaved func()
}

// DestroyDeps captures the destroy flow dependencies.
type DestroyDeps struct {
	BeforeDestroy func(ctx context.Context)
	AfterDestroy  func(ctx context.Context)

	Commit func(ctx context.Context) error
	Clear  func()
}
