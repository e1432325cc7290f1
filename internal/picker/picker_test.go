package picker

import (
	"errors"
	"testing"

	"github.com/ktr0731/go-fuzzyfinder"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/thoreinstein/themesnap/internal/component"
	"github.com/thoreinstein/themesnap/internal/detect"
	"github.com/thoreinstein/themesnap/internal/selection"
)

func testState() *selection.State {
	specs := []*component.Spec{
		{ID: "gtk-themes", DisplayName: "GTK Themes", Category: component.CategoryTheming, DestSubfolder: "GTK_Themes", Description: "GTK 2/3/4 themes"},
		{ID: "icons", DisplayName: "Icon Themes", Category: component.CategoryTheming, DestSubfolder: "Icons"},
		{ID: "shell", DisplayName: "Shell Prompt", Category: component.CategoryShell, DestSubfolder: "Shell"},
	}
	styles := []detect.Style{
		{ComponentID: "gtk-themes", Summary: "GTK3: Nordic", Paths: []string{"/home/alice/.themes", "/usr/share/themes"}},
	}
	return selection.New(specs, styles)
}

func selectedIDs(s *selection.State) []string {
	var ids []string
	for _, e := range s.Entries() {
		if e.Selected {
			ids = append(ids, e.Spec.ID)
		}
	}
	return ids
}

func TestPick_AppliesChoice(t *testing.T) {
	sel := testState()
	sel.Toggle(0)

	var labels []string
	p := NewWithFinder(func(slice any, itemFunc func(int) string, opts ...fuzzyfinder.Option) ([]int, error) {
		entries, ok := slice.([]selection.Entry)
		require.True(t, ok)
		for i := range entries {
			labels = append(labels, itemFunc(i))
		}
		assert.NotEmpty(t, opts)
		return []int{2, 1}, nil
	})

	require.NoError(t, p.Pick(sel))
	assert.Equal(t, []string{"icons", "shell"}, selectedIDs(sel))
	assert.Equal(t, "GTK Themes [Theming] GTK3: Nordic", labels[0])
}

func TestPick_Abort(t *testing.T) {
	sel := testState()
	sel.Toggle(1)

	p := NewWithFinder(func(any, func(int) string, ...fuzzyfinder.Option) ([]int, error) {
		return nil, fuzzyfinder.ErrAbort
	})

	err := p.Pick(sel)
	assert.ErrorIs(t, err, ErrCancelled)
	assert.Equal(t, []string{"icons"}, selectedIDs(sel), "selection must be untouched")
}

func TestPick_FinderError(t *testing.T) {
	boom := errors.New("no tty")
	p := NewWithFinder(func(any, func(int) string, ...fuzzyfinder.Option) ([]int, error) {
		return nil, boom
	})

	err := p.Pick(testState())
	assert.ErrorIs(t, err, boom)
	assert.NotErrorIs(t, err, ErrCancelled)
}

func TestPick_Empty(t *testing.T) {
	called := false
	p := NewWithFinder(func(any, func(int) string, ...fuzzyfinder.Option) ([]int, error) {
		called = true
		return nil, nil
	})

	require.NoError(t, p.Pick(selection.New(nil, nil)))
	assert.False(t, called)
}

func TestPreview(t *testing.T) {
	entries := testState().Entries()

	got := Preview(entries[0])
	assert.Contains(t, got, "GTK 2/3/4 themes")
	assert.Contains(t, got, "Category: Theming")
	assert.Contains(t, got, "Detected: GTK3: Nordic")
	assert.Contains(t, got, "Saved to: GTK_Themes/")
	assert.Contains(t, got, "  /usr/share/themes\n")

	got = Preview(entries[2])
	assert.Contains(t, got, "Detected: "+detect.NotDetected)
	assert.NotContains(t, got, "Sources:")
}
