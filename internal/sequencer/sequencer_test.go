package sequencer

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"sakhigps/internal/schedule"
)

var fiveSteps = []string{"north", "right", "straight", "left", "arrive"}

func newTestSequencer(t *testing.T) (*Sequencer[string], *schedule.ManualScheduler) {
	t.Helper()
	sched := schedule.NewManualScheduler()
	seq, err := New(fiveSteps, 8*time.Second, sched)
	require.NoError(t, err)
	return seq, sched
}

func TestNewRejectsEmptyAndBadPeriod(t *testing.T) {
	sched := schedule.NewManualScheduler()

	_, err := New([]string{}, time.Second, sched)
	assert.ErrorIs(t, err, ErrNoSteps)

	_, err = New(fiveSteps, 0, sched)
	assert.ErrorIs(t, err, ErrBadPeriod)
}

func TestIndexAfterKAdvancesIsKModN(t *testing.T) {
	for n := 1; n <= 7; n++ {
		steps := make([]int, n)
		seq, err := New(steps, time.Second, schedule.NewManualScheduler())
		require.NoError(t, err)

		for k := 1; k <= 3*n+2; k++ {
			st := seq.Advance()
			require.Equal(t, k%n, st.Index, "n=%d k=%d", n, k)
		}
	}
}

func TestTimerAdvancesOnlyWhileActive(t *testing.T) {
	seq, sched := newTestSequencer(t)

	sched.Advance(time.Minute)
	assert.Equal(t, State{Index: 0, Total: 5, Active: false}, seq.State())

	seq.Start()
	sched.Advance(16 * time.Second)
	assert.Equal(t, 2, seq.State().Index)
	assert.Equal(t, "straight", seq.Current())

	seq.Pause()
	sched.Advance(time.Minute)
	assert.Equal(t, State{Index: 2, Total: 5, Active: false}, seq.State())
	assert.Equal(t, 0, sched.Pending())

	seq.Resume()
	sched.Advance(8 * time.Second)
	assert.Equal(t, State{Index: 3, Total: 5, Active: true}, seq.State())

	seq.Stop()
	assert.Equal(t, State{Index: 0, Total: 5, Active: false}, seq.State())
	assert.Equal(t, 0, sched.Pending())
}

func TestWrapsAround(t *testing.T) {
	seq, sched := newTestSequencer(t)
	seq.Start()

	sched.Advance(5 * 8 * time.Second)
	assert.Equal(t, 0, seq.State().Index)
}

func TestStartResetsIndex(t *testing.T) {
	seq, sched := newTestSequencer(t)
	seq.Start()
	sched.Advance(24 * time.Second)
	require.Equal(t, 3, seq.State().Index)

	seq.Start()
	assert.Equal(t, 0, seq.State().Index)
	assert.Equal(t, 1, sched.Pending(), "restart must not arm a second timer")
}

func TestUpcoming(t *testing.T) {
	seq, _ := newTestSequencer(t)

	assert.Equal(t, []string{"right", "straight", "left"}, seq.Upcoming(3))

	seq.Restore(3)
	assert.Equal(t, []string{"arrive"}, seq.Upcoming(3))

	seq.Restore(4)
	assert.Empty(t, seq.Upcoming(3))
}

func TestRestoreWrapsIndex(t *testing.T) {
	seq, _ := newTestSequencer(t)

	seq.Restore(12)
	assert.Equal(t, 2, seq.State().Index)

	seq.Restore(-1)
	assert.Equal(t, 4, seq.State().Index)
}

func TestObserversSeeEveryAdvance(t *testing.T) {
	seq, sched := newTestSequencer(t)
	var seen []int
	seq.OnAdvance(func(st State) { seen = append(seen, st.Index) })

	seq.Start()
	sched.Advance(32 * time.Second)
	assert.Equal(t, []int{1, 2, 3, 4}, seen)
}

func TestStaleTickIsDropped(t *testing.T) {
	seq, _ := newTestSequencer(t)

	seq.Start()
	first := seq.gen
	seq.Stop()
	// a tick from the cancelled timer that was already in flight
	seq.tick(first)
	assert.Equal(t, State{Index: 0, Total: 5, Active: false}, seq.State())

	seq.Start()
	old := seq.gen
	seq.Pause()
	seq.Resume()
	seq.tick(old)
	assert.Equal(t, 0, seq.State().Index, "tick from the timer before the pause must not advance")

	seq.tick(seq.gen)
	assert.Equal(t, 1, seq.State().Index)
}
