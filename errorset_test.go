package goSession

import "testing"

func TestErrorSetToSentence(t *testing.T) {
	cases := []struct {
		name     string
		messages []string
		want     string
	}{
		{"empty", nil, ""},
		{"single", []string{"a"}, "a"},
		{"pair", []string{"a", "b"}, "a and b"},
		{"triple", []string{"a", "b", "c"}, "a, b, and c"},
		{"quad", []string{"a", "b", "c", "d"}, "a, b, c, and d"},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			var errs ErrorSet
			for _, m := range tc.messages {
				errs.Add(m)
			}
			if got := errs.ToSentence(); got != tc.want {
				t.Fatalf("expected %q, got %q", tc.want, got)
			}
		})
	}
}

func TestErrorSetIgnoresEmptyMessages(t *testing.T) {
	var errs ErrorSet
	errs.Add("")
	if !errs.Empty() {
		t.Fatal("expected empty message to be ignored")
	}
}

func TestErrorSetClear(t *testing.T) {
	var errs ErrorSet
	errs.Add("a")
	errs.Add("b")
	if errs.Len() != 2 {
		t.Fatalf("expected 2 messages, got %d", errs.Len())
	}

	errs.Clear()
	if !errs.Empty() {
		t.Fatal("expected empty set after clear")
	}
}

func TestErrorSetMessagesIsACopy(t *testing.T) {
	var errs ErrorSet
	errs.Add("a")

	msgs := errs.Messages()
	msgs[0] = "mutated"

	if errs.Messages()[0] != "a" {
		t.Fatal("expected internal messages unaffected by caller mutation")
	}
}
