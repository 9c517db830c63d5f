package goSession

import (
	"context"
	"testing"

	"github.com/MrEthical07/goSession/store"
)

// presenceValidator rejects sessions missing identifier or password.
var presenceValidator = ValidatorFunc(func(_ context.Context, sess *Session, errs *ErrorSet) {
	if sess.Attribute(AttrIdentifier) == "" {
		errs.Add("identifier can not be blank")
	}
	if sess.Attribute(AttrPassword) == "" {
		errs.Add("password can not be blank")
	}
})

func staticResolver(rec Record) RecordResolver {
	return ResolverFunc(func(context.Context, *Session) (*Record, error) {
		cp := rec
		return &cp, nil
	})
}

type failingStore struct {
	err error
}

func (s failingStore) Commit(context.Context, Ref, *Record) error {
	return s.err
}

func validAttrs() map[string]string {
	return map[string]string{
		AttrIdentifier: "alice@example.com",
		AttrPassword:   "correct-horse",
	}
}

func testRecord() Record {
	return Record{
		ID:             "user-1",
		Identifier:     "alice@example.com",
		Role:           "member",
		AccountVersion: 1,
	}
}

func newTestDefinition(t *testing.T, mutate func(*Builder)) (*Definition, *store.MemoryStore) {
	t.Helper()

	mem := store.NewMemoryStore()
	b := New().
		WithStore(mem).
		WithValidator(presenceValidator).
		WithResolver(staticResolver(testRecord()))

	if mutate != nil {
		mutate(b)
	}

	def, err := b.Build()
	if err != nil {
		t.Fatalf("build failed: %v", err)
	}
	t.Cleanup(def.Close)

	return def, mem
}
