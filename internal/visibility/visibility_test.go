package visibility

import (
	"testing"
	"time"

	"github.com/akasprzok/tandem/internal/charts"
	"github.com/google/go-cmp/cmp"
)

var t0 = time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC)

func twoLines() *charts.Chart {
	data := []charts.PointOptions{{X: t0, Y: charts.Float(1)}, {X: t0.Add(time.Minute), Y: charts.Float(2)}}
	return charts.New(charts.Options{Series: []charts.SeriesOptions{
		{Name: "A", Data: data},
		{Name: "B", Data: data},
	}})
}

func visibleNames(c *charts.Chart) []string {
	var out []string
	for _, it := range c.Items() {
		if it.Visible() {
			out = append(out, it.Name())
		}
	}
	return out
}

func TestSet(t *testing.T) {
	var unconstrained *Set
	if !unconstrained.Has("anything") {
		t.Error("nil set hides an id")
	}
	empty := NewSet()
	if empty.Has("A") {
		t.Error("empty set shows an id")
	}
	if unconstrained.Equal(empty) {
		t.Error("nil set equals empty set")
	}
	if !NewSet("A", "B", "A").Equal(NewSet("B", "A")) {
		t.Error("equal sets compare unequal")
	}
	if diff := cmp.Diff([]string{"A", "B"}, NewSet("A", "B", "A").IDs()); diff != "" {
		t.Errorf("IDs() mismatch (-want +got):\n%s", diff)
	}
}

func TestSetVisible(t *testing.T) {
	chart := twoLines()
	var calls [][]string
	c := New(chart, Options{OnChange: func(ids []string) { calls = append(calls, ids) }})

	c.SetVisible([]string{"A"})
	if diff := cmp.Diff([]string{"A"}, visibleNames(chart)); diff != "" {
		t.Errorf("visible mismatch (-want +got):\n%s", diff)
	}
	if chart.Renders() != 1 {
		t.Errorf("Renders() = %d, want 1", chart.Renders())
	}
	if diff := cmp.Diff([][]string{{"A"}}, calls); diff != "" {
		t.Errorf("callbacks mismatch (-want +got):\n%s", diff)
	}

	t.Run("idempotent", func(t *testing.T) {
		c.SetVisible([]string{"A"})
		if chart.Renders() != 1 {
			t.Errorf("Renders() = %d, want 1", chart.Renders())
		}
		if diff := cmp.Diff([]string{"A"}, visibleNames(chart)); diff != "" {
			t.Errorf("visible mismatch (-want +got):\n%s", diff)
		}
	})
}

func TestToggle(t *testing.T) {
	tests := []struct {
		name    string
		initial *Set
		toggle  string
		want    []string
	}{
		{name: "unconstrained hides", initial: nil, toggle: "B", want: []string{"A"}},
		{name: "shows hidden", initial: NewSet("A"), toggle: "B", want: []string{"A", "B"}},
		{name: "hides last visible", initial: NewSet("A"), toggle: "A", want: []string{}},
		{name: "keeps unknown extras in place", initial: NewSet("Z", "A", "B"), toggle: "A", want: []string{"Z", "B"}},
		{name: "shows in item order", initial: NewSet("Z", "B"), toggle: "A", want: []string{"Z", "A", "B"}},
		{name: "shows after extras", initial: NewSet("A", "Z"), toggle: "B", want: []string{"A", "Z", "B"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var got []string
			c := New(twoLines(), Options{Initial: tt.initial, OnChange: func(ids []string) { got = ids }})
			if !c.Toggle(tt.toggle) {
				t.Fatal("Toggle() = false, want true")
			}
			if diff := cmp.Diff(tt.want, got); diff != "" {
				t.Errorf("OnChange mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestToggleHidesEverything(t *testing.T) {
	chart := twoLines()
	c := New(chart, Options{})
	c.Toggle("A")
	c.Toggle("B")
	if got := visibleNames(chart); len(got) != 0 {
		t.Errorf("visible = %v, want none", got)
	}
	if c.Visible() == nil || c.Visible().Len() != 0 {
		t.Errorf("Visible() = %v, want empty set", c.Visible().IDs())
	}
}

func TestToggleRoundTrip(t *testing.T) {
	c := New(twoLines(), Options{Initial: NewSet("A", "B")})
	before := c.Visible()
	c.Toggle("A")
	c.Toggle("A")
	if !c.Visible().Equal(before) {
		t.Errorf("Visible() = %v, want %v", c.Visible().IDs(), before.IDs())
	}
}

func TestToggleRoundTripOrder(t *testing.T) {
	var calls [][]string
	c := New(twoLines(), Options{
		Controlled: true,
		Initial:    NewSet("Z", "A", "B"),
		OnChange:   func(ids []string) { calls = append(calls, ids) },
	})
	c.Toggle("A")
	c.Toggle("A")
	want := [][]string{{"Z", "B"}, {"Z", "A", "B"}}
	if diff := cmp.Diff(want, calls); diff != "" {
		t.Errorf("OnChange mismatch (-want +got):\n%s", diff)
	}
}

func TestToggleUnconstrainedKeepsOptionHidden(t *testing.T) {
	data := []charts.PointOptions{{X: t0, Y: charts.Float(1)}}
	chart := charts.New(charts.Options{Series: []charts.SeriesOptions{
		{Name: "A", Data: data},
		{Name: "B", Data: data},
		{Name: "C", Data: data, Visible: charts.Bool(false)},
	}})
	var got []string
	c := New(chart, Options{OnChange: func(ids []string) { got = ids }})
	c.Toggle("A")
	if diff := cmp.Diff([]string{"B"}, got); diff != "" {
		t.Errorf("OnChange mismatch (-want +got):\n%s", diff)
	}
	if diff := cmp.Diff([]string{"B"}, visibleNames(chart)); diff != "" {
		t.Errorf("visible mismatch (-want +got):\n%s", diff)
	}
}

func TestShown(t *testing.T) {
	chart := twoLines()
	chart.Series()[0].SetVisible(false, false)
	if diff := cmp.Diff([]string{"B"}, Shown(chart.Items()).IDs()); diff != "" {
		t.Errorf("Shown() mismatch (-want +got):\n%s", diff)
	}
}

func TestToggleUnknown(t *testing.T) {
	chart := twoLines()
	called := false
	c := New(chart, Options{OnChange: func([]string) { called = true }})
	if c.Toggle("nope") {
		t.Error("Toggle() = true, want false")
	}
	if called || chart.Renders() != 0 {
		t.Errorf("called = %v, renders = %d, want no effect", called, chart.Renders())
	}
}

func TestReconcileAfterUpdate(t *testing.T) {
	chart := twoLines()
	c := New(chart, Options{})
	unregister := chart.OnRender(c.Reconcile)
	defer unregister()

	c.SetVisible([]string{"B"})
	chart.Update(chart.Options())
	if diff := cmp.Diff([]string{"B"}, visibleNames(chart)); diff != "" {
		t.Errorf("visible after Update mismatch (-want +got):\n%s", diff)
	}
}

func TestControlled(t *testing.T) {
	chart := twoLines()
	var got []string
	c := New(chart, Options{
		Controlled: true,
		Initial:    NewSet("A", "B"),
		OnChange:   func(ids []string) { got = ids },
	})
	chart.OnRender(c.Reconcile)
	c.Reconcile()

	c.Toggle("B")
	if diff := cmp.Diff([]string{"A"}, got); diff != "" {
		t.Errorf("OnChange mismatch (-want +got):\n%s", diff)
	}
	if diff := cmp.Diff([]string{"A"}, visibleNames(chart)); diff != "" {
		t.Errorf("visible mismatch (-want +got):\n%s", diff)
	}

	// The caller rejects the change.
	c.SetExternal(NewSet("A", "B"))
	if diff := cmp.Diff([]string{"A", "B"}, visibleNames(chart)); diff != "" {
		t.Errorf("visible after SetExternal mismatch (-want +got):\n%s", diff)
	}
	if !c.Controlled() {
		t.Error("Controlled() = false, want true")
	}
}

func TestSharedIdentityTogglesTogether(t *testing.T) {
	chart := charts.New(charts.Options{Series: []charts.SeriesOptions{
		{Name: "fruit", Type: charts.TypePie, Data: []charts.PointOptions{
			{Name: "apple", Y: charts.Float(1)},
			{Name: "pear", Y: charts.Float(1)},
			{Name: "apple", Y: charts.Float(2)},
		}},
	}})
	c := New(chart, Options{})
	c.Toggle("apple")
	if diff := cmp.Diff([]string{"pear"}, visibleNames(chart)); diff != "" {
		t.Errorf("visible mismatch (-want +got):\n%s", diff)
	}
}
