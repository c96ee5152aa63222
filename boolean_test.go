package blaze

import (
	"reflect"
	"testing"
)

func TestLexBooleanQuery(t *testing.T) {
	got := lexBooleanQuery("(cat AND dog) OR NOT fish")
	want := []string{"(", "cat", "AND", "dog", ")", "OR", "NOT", "fish"}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("lexBooleanQuery() = %v, want %v", got, want)
	}
}

func TestToPostfix(t *testing.T) {
	cases := []struct {
		query string
		want  []string
	}{
		{"a AND b OR c", []string{"a", "b", "AND", "c", "OR"}},
		{"a AND NOT b", []string{"a", "b", "NOT", "AND"}},
		{"( a OR b ) AND c", []string{"a", "b", "OR", "c", "AND"}},
	}
	for _, c := range cases {
		got, err := toPostfix(lexBooleanQuery(c.query))
		if err != nil {
			t.Fatalf("toPostfix(%q): %v", c.query, err)
		}
		if !reflect.DeepEqual(got, c.want) {
			t.Errorf("toPostfix(%q) = %v, want %v", c.query, got, c.want)
		}
	}
}

func TestToPostfix_Malformed(t *testing.T) {
	cases := []string{
		"( a AND b",
		"a AND b )",
	}
	for _, q := range cases {
		if _, err := toPostfix(lexBooleanQuery(q)); err == nil {
			t.Errorf("toPostfix(%q) should have failed", q)
		}
	}
}
