package pad

import (
	"strings"
	"testing"
)

func TestParseLabels(t *testing.T) {
	l, err := ParseLabels([]byte("0: Cross\n3: Triangle\n20: Paddle\n"))
	if err != nil {
		t.Fatalf("ParseLabels: %v", err)
	}
	for _, c := range []struct {
		i    int
		want string
	}{
		{0, "Cross"},
		{3, "Triangle"},
		{20, "Paddle"},
		{1, "B"},          // unmapped, standard layout
		{17, "Button 17"}, // unmapped, beyond the standard layout
	} {
		if got := l.Label(c.i); got != c.want {
			t.Errorf("Label(%d) = %q, want %q", c.i, got, c.want)
		}
	}
}

func TestParseLabelsErrors(t *testing.T) {
	for _, c := range []struct {
		name string
		in   string
		want string
	}{
		{"bad yaml", "{]", "parsing labels"},
		{"negative index", "-2: Oops", "negative button index"},
		{"empty name", `4: ""`, "empty name"},
	} {
		t.Run(c.name, func(t *testing.T) {
			if _, err := ParseLabels([]byte(c.in)); err == nil || !strings.Contains(err.Error(), c.want) {
				t.Errorf("ParseLabels(%q) err = %v, want %q", c.in, err, c.want)
			}
		})
	}
}
