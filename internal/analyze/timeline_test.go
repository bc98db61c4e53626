package analyze

import (
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/claimlens/claimlens/internal/model"
)

func TestSortTimeline_DatedAscending(t *testing.T) {
	in := []model.TimelineEntry{
		{Date: "March 3, 2024", Event: "third"},
		{Date: "2024-01-01", Event: "first"},
		{Date: "Feb 2, 2024", Event: "second"},
	}

	got := SortTimeline(in)

	want := []model.TimelineEntry{
		{Date: "2024-01-01", Event: "first"},
		{Date: "Feb 2, 2024", Event: "second"},
		{Date: "March 3, 2024", Event: "third"},
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("timeline mismatch (-want +got):\n%s", diff)
	}
}

func TestSortTimeline_UndatedAppendedInOrder(t *testing.T) {
	in := []model.TimelineEntry{
		{Date: "last week", Event: "vague one"},
		{Date: "2023-06-15", Event: "dated"},
		{Date: "sometime", Event: "vague two"},
	}

	got := SortTimeline(in)

	want := []model.TimelineEntry{
		{Date: "2023-06-15", Event: "dated"},
		{Date: "last week", Event: "vague one"},
		{Date: "sometime", Event: "vague two"},
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("timeline mismatch (-want +got):\n%s", diff)
	}
}

func TestSortTimeline_StableOnEqualDates(t *testing.T) {
	in := []model.TimelineEntry{
		{Date: "2024-05-01", Event: "announced in the morning"},
		{Date: "2024-05-01", Event: "retracted in the evening"},
	}

	got := SortTimeline(in)

	if got[0].Event != "announced in the morning" || got[1].Event != "retracted in the evening" {
		t.Errorf("equal dates must keep input order, got %v", got)
	}
}

func TestSortTimeline_EmptyAndSingle(t *testing.T) {
	if got := SortTimeline(nil); len(got) != 0 {
		t.Errorf("nil input should stay empty, got %v", got)
	}

	single := []model.TimelineEntry{{Date: "2024", Event: "only"}}
	if got := SortTimeline(single); len(got) != 1 {
		t.Errorf("single entry should pass through, got %v", got)
	}
}

func TestParseDate_Layouts(t *testing.T) {
	parseable := []string{"2024-03-01", "March 1, 2024", "Mar 1, 2024", "March 2024", "2024"}
	for _, s := range parseable {
		if _, ok := parseDate(s); !ok {
			t.Errorf("expected %q to parse", s)
		}
	}

	unparseable := []string{"", "next Tuesday", "the distant past"}
	for _, s := range unparseable {
		if _, ok := parseDate(s); ok {
			t.Errorf("expected %q not to parse", s)
		}
	}
}
