package identity

import (
	"testing"

	"github.com/akasprzok/tandem/internal/charts"
	"github.com/google/go-cmp/cmp"
)

type ref struct{ id, name string }

func (r ref) ID() string   { return r.id }
func (r ref) Name() string { return r.name }

func TestOf(t *testing.T) {
	tests := []struct {
		name string
		ref  ref
		want string
	}{
		{name: "id wins over name", ref: ref{id: "cpu", name: "CPU usage"}, want: "cpu"},
		{name: "name when id is empty", ref: ref{name: "CPU usage"}, want: "CPU usage"},
		{name: "both empty", ref: ref{}, want: ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Of(tt.ref); got != tt.want {
				t.Errorf("Of() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestOfIsStableAcrossRedraws(t *testing.T) {
	opts := charts.Options{Series: []charts.SeriesOptions{
		{ID: "a", Name: "Alpha"},
		{Name: "Beta"},
	}}
	c := charts.New(opts)
	before := Distinct(c.Items())
	c.Update(opts)
	after := Distinct(c.Items())

	if diff := cmp.Diff(before, after); diff != "" {
		t.Errorf("identities changed across Update (-before +after):\n%s", diff)
	}
	if diff := cmp.Diff([]string{"a", "Beta"}, after); diff != "" {
		t.Errorf("Distinct() mismatch (-want +got):\n%s", diff)
	}
}

func TestSharedIdentity(t *testing.T) {
	c := charts.New(charts.Options{Series: []charts.SeriesOptions{
		{Name: "fruit", Type: charts.TypePie, Data: []charts.PointOptions{
			{Name: "apple"}, {Name: "pear"}, {Name: "apple"},
		}},
	}})
	items := c.Items()

	if diff := cmp.Diff([]string{"apple", "pear"}, Distinct(items)); diff != "" {
		t.Errorf("Distinct() mismatch (-want +got):\n%s", diff)
	}
	if got := len(Members(items, "apple")); got != 2 {
		t.Errorf("len(Members(apple)) = %d, want 2", got)
	}
	if Known(items, "plum") {
		t.Error("Known(plum) = true, want false")
	}
}
