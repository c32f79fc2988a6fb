package navigator

import (
	"bytes"
	"errors"
	"fmt"
	"log/slog"
	"sync"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/jask/scenecompanion/internal/catalog"
)

func newTestNavigator(t *testing.T, opts ...Option) *Navigator {
	t.Helper()
	seq := 0
	opts = append([]Option{WithSessionIDs(func() string {
		seq++
		return fmt.Sprintf("session-%d", seq)
	})}, opts...)
	return New(catalog.MustLoad(catalog.SchemaRich), opts...)
}

func requireAt(t *testing.T, n *Navigator, visible bool, depth Depth) {
	t.Helper()
	st := n.State()
	require.Equal(t, visible, st.Visible, "visible")
	if visible {
		require.Equal(t, depth, st.Depth, "depth")
	}
}

func TestInitialStateHidden(t *testing.T) {
	t.Parallel()

	n := newTestNavigator(t)
	st := n.State()
	require.False(t, st.Visible)
	require.False(t, st.VoiceMode)
	require.Empty(t, st.Session)
	require.Equal(t, KindHidden, n.CurrentView().Kind)
}

func TestDuplicateSignalsAreIdempotent(t *testing.T) {
	t.Parallel()

	n := newTestNavigator(t)
	n.OnPause()
	require.NoError(t, n.SelectTopic("plot"))
	before := n.State()

	n.OnPause()
	require.Equal(t, before, n.State())

	n.OnPlay()
	requireAt(t, n, false, DepthRoot)
	hidden := n.State()
	n.OnPlay()
	require.Equal(t, hidden, n.State())
	n.Close()
	require.Equal(t, hidden, n.State())
}

func TestRoundTripNavigationForEveryTopic(t *testing.T) {
	t.Parallel()

	n := newTestNavigator(t)
	n.OnPause()
	rootBefore := n.CurrentView().Root.Topics

	for _, topic := range n.Catalog().Topics() {
		require.NoError(t, n.SelectTopic(topic.ID))
		require.NoError(t, n.SelectAction(0))
		requireAt(t, n, true, DepthAction)
		n.Back()
		requireAt(t, n, true, DepthEntity)
		n.Back()
		requireAt(t, n, true, DepthRoot)

		v := n.CurrentView()
		require.Equal(t, KindRoot, v.Kind)
		require.Equal(t, rootBefore, v.Root.Topics)
	}
}

func TestHideResetsDrillDown(t *testing.T) {
	t.Parallel()

	for _, hide := range []string{"play", "close"} {
		t.Run(hide, func(t *testing.T) {
			t.Parallel()
			n := newTestNavigator(t)
			n.OnPause()
			require.NoError(t, n.SelectTopic("costumes"))
			require.NoError(t, n.SelectAction(1))
			requireAt(t, n, true, DepthAction)

			if hide == "play" {
				n.OnPlay()
			} else {
				n.Close()
			}
			requireAt(t, n, false, DepthRoot)

			n.OnPause()
			st := n.State()
			require.True(t, st.Visible)
			require.Equal(t, DepthRoot, st.Depth)
			require.Empty(t, st.TopicID)
			require.Equal(t, -1, st.ActionIndex)
			require.Equal(t, KindRoot, n.CurrentView().Kind)
		})
	}
}

func TestBackAtRootIsNoOp(t *testing.T) {
	t.Parallel()

	n := newTestNavigator(t)
	n.OnPause()
	before := n.State()
	n.Back()
	n.Back()
	require.Equal(t, before, n.State())
}

func TestInvalidSelectionLeavesStateUnchanged(t *testing.T) {
	t.Parallel()

	n := newTestNavigator(t)
	n.OnPause()
	before := n.State()

	err := n.SelectTopic("nonexistent-id")
	require.ErrorIs(t, err, ErrInvalidSelection)
	require.Equal(t, before, n.State())

	err = n.SelectAction(0)
	require.ErrorIs(t, err, ErrInvalidSelection, "actions are not offered at root")
	require.Equal(t, before, n.State())

	require.NoError(t, n.SelectTopic("location"))
	entity := n.State()
	for _, idx := range []int{-1, 3, 99} {
		err = n.SelectAction(idx)
		require.ErrorIs(t, err, ErrInvalidSelection, "index %d", idx)
		require.Equal(t, entity, n.State())
	}
	err = n.SelectTopic("plot")
	require.ErrorIs(t, err, ErrInvalidSelection, "topics are not offered at entity depth")
	require.Equal(t, entity, n.State())

	require.NoError(t, n.SelectAction(2))
	action := n.State()
	require.ErrorIs(t, n.SelectAction(0), ErrInvalidSelection)
	require.Equal(t, action, n.State())
}

func TestCallsWhileHiddenAreSilentNoOps(t *testing.T) {
	t.Parallel()

	n := newTestNavigator(t)
	require.NoError(t, n.SelectTopic("location"))
	require.NoError(t, n.SelectTopic("nonexistent-id"))
	require.NoError(t, n.SelectAction(5))
	n.Back()
	n.ToggleVoiceMode()
	st := n.State()
	require.False(t, st.Visible)
	require.False(t, st.VoiceMode)
}

func TestLocationScenario(t *testing.T) {
	t.Parallel()

	n := newTestNavigator(t)
	requireAt(t, n, false, DepthRoot)

	n.OnPause()
	v := n.CurrentView()
	require.Equal(t, KindRoot, v.Kind)
	var titles []string
	for _, topic := range v.Root.Topics {
		titles = append(titles, topic.Title)
	}
	require.Contains(t, titles, "Location")

	require.NoError(t, n.SelectTopic("location"))
	v = n.CurrentView()
	require.Equal(t, KindEntity, v.Kind)
	loc, _ := n.Catalog().Topic("location")
	require.Equal(t, loc.Info, v.Entity.Info)
	require.Equal(t, BackTarget{Depth: DepthRoot}, v.Entity.Back)
	require.Len(t, v.Entity.Actions, 3)
	require.Equal(t, "Learn More", v.Entity.Actions[0].Label)
	require.Equal(t, "Visit", v.Entity.Actions[1].Label)
	require.Equal(t, "Recommendations", v.Entity.Actions[2].Label)
	entity := v

	require.NoError(t, n.SelectAction(1))
	v = n.CurrentView()
	require.Equal(t, KindAction, v.Kind)
	require.Equal(t, catalog.ActionVisit, v.Action.Type)
	require.Equal(t, "Plan your trip to this iconic location", v.Action.Description)
	require.Len(t, v.Action.Items, 3)
	require.Equal(t, "Visit Griffith Observatory", v.Action.Items[0].Title)
	require.Equal(t, BackTarget{Depth: DepthEntity, TopicID: "location"}, v.Action.Back)

	n.Back()
	require.Equal(t, entity, n.CurrentView())

	n.OnPlay()
	requireAt(t, n, false, DepthRoot)
	require.Equal(t, KindHidden, n.CurrentView().Kind)
}

func TestVoiceToggleIsolation(t *testing.T) {
	t.Parallel()

	n := newTestNavigator(t)
	n.OnPause()
	n.ToggleVoiceMode()
	st := n.State()
	require.True(t, st.VoiceMode)
	require.Equal(t, DepthRoot, st.Depth)

	v := n.CurrentView()
	require.True(t, v.Root.VoiceMode)
	require.Equal(t, VoiceHint, v.Root.VoiceHint)
	require.Len(t, v.Root.Topics, n.Catalog().Len(), "voice mode never changes the selectable set")

	require.NoError(t, n.SelectTopic("actors"))
	n.ToggleVoiceMode() // ignored below root
	require.True(t, n.State().VoiceMode)
	require.NoError(t, n.SelectAction(0))
	n.ToggleVoiceMode()
	require.True(t, n.State().VoiceMode)
	n.Back()
	n.Back()
	require.True(t, n.State().VoiceMode)

	n.ToggleVoiceMode()
	require.False(t, n.State().VoiceMode)
	require.Empty(t, n.CurrentView().Root.VoiceHint)
}

func TestVoiceModeAcrossSessions(t *testing.T) {
	t.Parallel()

	cases := map[VoicePolicy]bool{
		VoiceReset:  false,
		VoiceRetain: true,
	}
	for policy, want := range cases {
		t.Run(string(policy), func(t *testing.T) {
			t.Parallel()
			n := newTestNavigator(t, WithVoicePolicy(policy))
			n.OnPause()
			n.ToggleVoiceMode()
			require.True(t, n.State().VoiceMode)

			n.Close()
			n.OnPause()
			require.Equal(t, want, n.State().VoiceMode)
			require.Equal(t, want, n.CurrentView().Root.VoiceMode)
		})
	}
}

func TestParseVoicePolicy(t *testing.T) {
	t.Parallel()

	p, err := ParseVoicePolicy("retain")
	require.NoError(t, err)
	require.Equal(t, VoiceRetain, p)
	_, err = ParseVoicePolicy("sometimes")
	require.Error(t, err)
}

func TestEachShowStartsNewSession(t *testing.T) {
	t.Parallel()

	n := newTestNavigator(t)
	n.OnPause()
	require.Equal(t, "session-1", n.State().Session)
	n.OnPause()
	require.Equal(t, "session-1", n.State().Session)
	n.OnPlay()
	require.Empty(t, n.State().Session)
	n.OnPause()
	require.Equal(t, "session-2", n.State().Session)
}

func TestObserversSeeEffectiveTransitionsOnly(t *testing.T) {
	t.Parallel()

	n := newTestNavigator(t)
	var seen []State
	n.Observe(func(st State) { seen = append(seen, st) })

	n.Back()     // hidden: ignored
	n.OnPause()  // 1
	n.OnPause()  // duplicate: ignored
	n.Back()     // root: ignored
	_ = n.SelectTopic("nope")
	require.NoError(t, n.SelectTopic("plot")) // 2
	n.Close()                                 // 3

	require.Len(t, seen, 3)
	require.Equal(t, DepthRoot, seen[0].Depth)
	require.Equal(t, "plot", seen[1].TopicID)
	require.False(t, seen[2].Visible)
}

func TestLegacySchemaNavigation(t *testing.T) {
	t.Parallel()

	n := New(catalog.MustLoad(catalog.SchemaLegacy), WithVoicePolicy(VoiceRetain))
	n.OnPause()
	require.NoError(t, n.SelectTopic("genre"))
	v := n.CurrentView()
	require.Equal(t, "Similar Genres", v.Entity.Title)
	require.Len(t, v.Entity.Actions, 2)

	require.NoError(t, n.SelectAction(1))
	v = n.CurrentView()
	require.Equal(t, KindAction, v.Kind)
	require.Equal(t, "Movies you might also enjoy", v.Action.Description)
	require.Empty(t, v.Action.Items)
}

func TestConcurrentEventsAreSerialized(t *testing.T) {
	t.Parallel()

	n := New(catalog.MustLoad(catalog.SchemaRich))
	var wg sync.WaitGroup
	for i := range 8 {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			for j := range 200 {
				switch (i + j) % 6 {
				case 0:
					n.OnPause()
				case 1:
					_ = n.SelectTopic("location")
				case 2:
					_ = n.SelectAction(j % 3)
				case 3:
					n.Back()
				case 4:
					n.ToggleVoiceMode()
				case 5:
					if j%7 == 0 {
						n.OnPlay()
					}
				}
				_ = n.CurrentView()
			}
		}(i)
	}
	wg.Wait()

	st := n.State()
	if !st.Visible {
		require.Equal(t, KindHidden, n.CurrentView().Kind)
		return
	}
	v := n.CurrentView()
	switch st.Depth {
	case DepthRoot:
		require.Equal(t, KindRoot, v.Kind)
	case DepthEntity:
		require.Equal(t, KindEntity, v.Kind)
		require.Equal(t, "location", v.Entity.TopicID)
	case DepthAction:
		require.Equal(t, KindAction, v.Kind)
		require.Equal(t, st.ActionIndex, v.Action.Index)
	}
}

func TestTransitionsAreLogged(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	logger := slog.New(slog.NewTextHandler(&buf, &slog.HandlerOptions{Level: slog.LevelDebug}))
	n := newTestNavigator(t, WithLogger(logger))
	n.OnPause()
	err := n.SelectTopic("missing")
	require.True(t, errors.Is(err, ErrInvalidSelection))

	out := buf.String()
	require.Contains(t, out, "companion transition")
	require.Contains(t, out, "session=session-1")
	require.Contains(t, out, "companion selection rejected")
}
