package catalog

import (
	"reflect"
	"strings"
	"testing"
)

var sample = []Course{
	{Code: "CS101", Name: "Intro"},
	{Code: "CS201", Name: "Data"},
	{Code: "MATH 151", Name: "Engineering Mathematics I"},
	{Code: "PHYS 206", Name: "Newtonian Mechanics"},
	{Code: "CSCE 221", Name: "Data Structures"},
}

func TestFilter(t *testing.T) {
	tc := []struct {
		name  string
		query string
		want  []string
	}{
		{name: "code prefix", query: "cs2", want: []string{"CS201"}},
		{name: "empty query matches all", query: "", want: []string{"CS101", "CS201", "MATH 151", "PHYS 206", "CSCE 221"}},
		{name: "name match keeps catalog order", query: "data", want: []string{"CS201", "CSCE 221"}},
		{name: "case insensitive", query: "NEWTON", want: []string{"PHYS 206"}},
		{name: "code or name", query: "i", want: []string{"CS101", "MATH 151", "PHYS 206"}},
		{name: "whitespace is literal", query: " 151", want: []string{"MATH 151"}},
		{name: "untrimmed trailing space", query: "cs ", want: []string{}},
		{name: "no match", query: "zzz", want: []string{}},
	}

	for _, tt := range tc {
		t.Run(tt.name, func(t *testing.T) {
			got := codes(Filter(sample, tt.query))
			if !reflect.DeepEqual(got, tt.want) {
				t.Errorf("Filter(%q) = %v, want %v", tt.query, got, tt.want)
			}
		})
	}
}

func TestFilterProperties(t *testing.T) {
	queries := []string{"", "c", "cs", "a", "data", "1", "e", "MATH", "x"}

	for _, q := range queries {
		got := Filter(sample, q)

		// exactly the matching courses
		var want []Course
		for _, c := range sample {
			lq := strings.ToLower(q)
			if strings.Contains(strings.ToLower(c.Code), lq) || strings.Contains(strings.ToLower(c.Name), lq) {
				want = append(want, c)
			}
		}
		if len(got) != len(want) {
			t.Fatalf("Filter(%q) returned %d courses, want %d", q, len(got), len(want))
		}
		for i := range want {
			if got[i] != want[i] {
				t.Errorf("Filter(%q)[%d] = %v, want %v", q, i, got[i], want[i])
			}
		}

		// deterministic
		if again := Filter(sample, q); !reflect.DeepEqual(got, again) {
			t.Errorf("Filter(%q) not deterministic", q)
		}
	}
}

func TestFilterDoesNotAliasInput(t *testing.T) {
	in := []Course{{Code: "A1", Name: "One"}}
	out := Filter(in, "")
	out[0].Name = "changed"
	if in[0].Name != "One" {
		t.Error("Filter result must not share storage with the catalog")
	}
}

func TestSuggest(t *testing.T) {
	t.Run("fuzzy match", func(t *testing.T) {
		got, ok := Suggest(sample, "phy26")
		if !ok || got.Code != "PHYS 206" {
			t.Errorf("Suggest() = %v, %v; want PHYS 206", got, ok)
		}
	})

	t.Run("blank query", func(t *testing.T) {
		if _, ok := Suggest(sample, "  "); ok {
			t.Error("expected no suggestion for a blank query")
		}
	})

	t.Run("nothing close", func(t *testing.T) {
		if _, ok := Suggest(sample, "qqqq"); ok {
			t.Error("expected no suggestion")
		}
	})
}

func codes(courses []Course) []string {
	out := make([]string, 0, len(courses))
	for _, c := range courses {
		out = append(out, c.Code)
	}
	return out
}
