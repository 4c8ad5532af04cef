package combiner

import (
	"errors"
	"reflect"
	"testing"
)

func TestHeaderMapper_Canonical(t *testing.T) {
	tests := []struct {
		name    string
		headers [][]string
		want    []string
	}{
		{
			name:    "no headers",
			headers: nil,
			want:    []string{},
		},
		{
			name:    "single header kept verbatim",
			headers: [][]string{{"id", "name", "score"}},
			want:    []string{"id", "name", "score"},
		},
		{
			name: "identical headers kept verbatim",
			headers: [][]string{
				{"a", "b", "c"},
				{"a", "b", "c"},
				{"a", "b", "c"},
			},
			want: []string{"a", "b", "c"},
		},
		{
			name: "overlapping headers interleave",
			headers: [][]string{
				{"id", "name"},
				{"name", "score"},
			},
			want: []string{"id", "name", "score"},
		},
		{
			name: "majority wins within a slot",
			headers: [][]string{
				{"a", "b"},
				{"a", "b"},
				{"b", "a"},
			},
			want: []string{"a", "b"},
		},
		{
			name: "equal frequency ties break by name",
			headers: [][]string{
				{"b"},
				{"a"},
			},
			want: []string{"a", "b"},
		},
		{
			name: "earlier slot resolves before higher frequency",
			headers: [][]string{
				{"x", "z"},
				{"y", "z"},
				{"y", "z"},
			},
			want: []string{"y", "x", "z"},
		},
		{
			name: "column seen at several positions placed once",
			headers: [][]string{
				{"a", "b", "c"},
				{"c", "a", "b"},
			},
			want: []string{"a", "c", "b"},
		},
		{
			name: "ragged header lengths",
			headers: [][]string{
				{"a"},
				{"a", "b", "c"},
			},
			want: []string{"a", "b", "c"},
		},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			hm := NewHeaderMapper()
			for _, h := range tt.headers {
				if err := hm.AddHeader(h); err != nil {
					t.Fatalf("AddHeader(%v) err = %v", h, err)
				}
			}

			got := hm.Canonical()
			if !reflect.DeepEqual(got, tt.want) {
				t.Errorf("Canonical() = %v; want %v", got, tt.want)
			}
		})
	}
}

func TestHeaderMapper_CanonicalIsUnionPermutation(t *testing.T) {
	t.Parallel()

	headers := [][]string{
		{"id", "name", "age"},
		{"name", "score", "id"},
		{"rank", "name"},
		{"id"},
	}

	hm := NewHeaderMapper()
	for _, h := range headers {
		if err := hm.AddHeader(h); err != nil {
			t.Fatalf("AddHeader(%v) err = %v", h, err)
		}
	}

	union := make(map[string]bool)
	for _, h := range headers {
		for _, name := range h {
			union[name] = true
		}
	}

	got := hm.Canonical()
	if len(got) != len(union) {
		t.Fatalf("Canonical() has %d columns; want %d", len(got), len(union))
	}

	seen := make(map[string]bool)
	for _, name := range got {
		if seen[name] {
			t.Errorf("Canonical() contains %q more than once", name)
		}
		seen[name] = true
		if !union[name] {
			t.Errorf("Canonical() contains %q, absent from all inputs", name)
		}
	}
}

func TestHeaderMapper_CanonicalMemoized(t *testing.T) {
	t.Parallel()

	hm := NewHeaderMapper()
	if err := hm.AddHeader([]string{"a", "b"}); err != nil {
		t.Fatalf("AddHeader() err = %v", err)
	}

	first := hm.Canonical()
	second := hm.Canonical()
	if !reflect.DeepEqual(first, second) {
		t.Errorf("Canonical() not stable: %v then %v", first, second)
	}
}

func TestHeaderMapper_AddHeaderAfterFinalize(t *testing.T) {
	t.Parallel()

	hm := NewHeaderMapper()
	if err := hm.AddHeader([]string{"a"}); err != nil {
		t.Fatalf("AddHeader() err = %v", err)
	}

	_ = hm.Canonical()

	err := hm.AddHeader([]string{"b"})
	if !errors.Is(err, ErrFinalized) {
		t.Fatalf("AddHeader() after Canonical() err = %v; want ErrFinalized", err)
	}
}
