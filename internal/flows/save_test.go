package flows

import (
	"context"
	"errors"
	"strings"
	"testing"
)

type flowTrace struct {
	steps []string
}

func (tr *flowTrace) step(name string) func(context.Context) {
	return func(context.Context) {
		tr.steps = append(tr.steps, name)
	}
}

func (tr *flowTrace) joined() string {
	return strings.Join(tr.steps, ",")
}

func saveDeps(tr *flowTrace, isNew bool) SaveDeps {
	return SaveDeps{
		IsNew: isNew,
		Validate: func(context.Context) bool {
			tr.steps = append(tr.steps, "validate")
			return true
		},
		Resolve: func(ctx context.Context) error {
			tr.step("resolve")(ctx)
			return nil
		},
		Commit: func(ctx context.Context) error {
			tr.step("commit")(ctx)
			return nil
		},
		BeforeSave:   tr.step("before_save"),
		BeforeCreate: tr.step("before_create"),
		AfterCreate:  tr.step("after_create"),
		BeforeUpdate: tr.step("before_update"),
		AfterUpdate:  tr.step("after_update"),
		AfterSave:    tr.step("after_save"),
		MarkSaved: func() {
			tr.steps = append(tr.steps, "mark_saved")
		},
	}
}

func TestRunSaveCreateOrdering(t *testing.T) {
	tr := &flowTrace{}
	ok, err := RunSave(context.Background(), saveDeps(tr, true))
	if !ok || err != nil {
		t.Fatalf("expected success, got ok=%v err=%v", ok, err)
	}

	want := "validate,resolve,before_save,before_create,after_create,after_save,commit,mark_saved"
	if tr.joined() != want {
		t.Fatalf("expected %s, got %s", want, tr.joined())
	}
}

func TestRunSaveUpdateOrdering(t *testing.T) {
	tr := &flowTrace{}
	ok, err := RunSave(context.Background(), saveDeps(tr, false))
	if !ok || err != nil {
		t.Fatalf("expected success, got ok=%v err=%v", ok, err)
	}

	want := "validate,resolve,before_save,before_update,after_update,after_save,commit,mark_saved"
	if tr.joined() != want {
		t.Fatalf("expected %s, got %s", want, tr.joined())
	}
}

func TestRunSaveStopsOnValidationFailure(t *testing.T) {
	tr := &flowTrace{}
	deps := saveDeps(tr, true)
	deps.Validate = func(context.Context) bool {
		tr.steps = append(tr.steps, "validate")
		return false
	}

	ok, err := RunSave(context.Background(), deps)
	if ok || err != nil {
		t.Fatalf("expected clean failure, got ok=%v err=%v", ok, err)
	}
	if tr.joined() != "validate" {
		t.Fatalf("expected only validation, got %s", tr.joined())
	}
}

func TestRunSaveStopsOnResolveError(t *testing.T) {
	tr := &flowTrace{}
	resolveErr := errors.New("resolve failed")
	deps := saveDeps(tr, true)
	deps.Resolve = func(context.Context) error {
		tr.steps = append(tr.steps, "resolve")
		return resolveErr
	}

	ok, err := RunSave(context.Background(), deps)
	if ok {
		t.Fatal("expected failure")
	}
	if !errors.Is(err, resolveErr) {
		t.Fatalf("expected resolve error unchanged, got %v", err)
	}
	if tr.joined() != "validate,resolve" {
		t.Fatalf("expected flow to stop at resolve, got %s", tr.joined())
	}
}

func TestRunSaveCommitErrorSkipsMarkSaved(t *testing.T) {
	tr := &flowTrace{}
	commitErr := errors.New("commit failed")
	deps := saveDeps(tr, true)
	deps.Commit = func(context.Context) error {
		tr.steps = append(tr.steps, "commit")
		return commitErr
	}

	ok, err := RunSave(context.Background(), deps)
	if ok {
		t.Fatal("expected failure")
	}
	if !errors.Is(err, commitErr) {
		t.Fatalf("expected commit error unchanged, got %v", err)
	}
	if strings.Contains(tr.joined(), "mark_saved") {
		t.Fatalf("expected mark_saved skipped, got %s", tr.joined())
	}
	// The full phase bracket has already fired by commit time.
	want := "validate,resolve,before_save,before_create,after_create,after_save,commit"
	if tr.joined() != want {
		t.Fatalf("expected %s, got %s", want, tr.joined())
	}
}

func TestRunDestroyOrdering(t *testing.T) {
	tr := &flowTrace{}
	deps := DestroyDeps{
		BeforeDestroy: tr.step("before_destroy"),
		AfterDestroy:  tr.step("after_destroy"),
		Commit: func(ctx context.Context) error {
			tr.step("commit")(ctx)
			return nil
		},
		Clear: func() {
			tr.steps = append(tr.steps, "clear")
		},
	}

	if err := RunDestroy(context.Background(), deps); err != nil {
		t.Fatalf("destroy failed: %v", err)
	}

	want := "before_destroy,commit,clear,after_destroy"
	if tr.joined() != want {
		t.Fatalf("expected %s, got %s", want, tr.joined())
	}
}

func TestRunDestroyCommitErrorSkipsClear(t *testing.T) {
	tr := &flowTrace{}
	commitErr := errors.New("commit failed")
	deps := DestroyDeps{
		BeforeDestroy: tr.step("before_destroy"),
		AfterDestroy:  tr.step("after_destroy"),
		Commit: func(context.Context) error {
			tr.steps = append(tr.steps, "commit")
			return commitErr
		},
		Clear: func() {
			tr.steps = append(tr.steps, "clear")
		},
	}

	if err := RunDestroy(context.Background(), deps); !errors.Is(err, commitErr) {
		t.Fatalf("expected commit error, got %v", err)
	}
	if tr.joined() != "before_destroy,commit" {
		t.Fatalf("expected flow to stop at commit, got %s", tr.joined())
	}
}
