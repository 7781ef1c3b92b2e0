package game

import (
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/aaronzipp/black-and-white/internal/models"
	"github.com/aaronzipp/black-and-white/internal/sse"
)

func TestRegistryConnectAssignsRoles(t *testing.T) {
	reg, rec := newTable()

	role, err := reg.Connect("x")
	require.NoError(t, err)
	require.Equal(t, models.RoleHost, role)

	role, err = reg.Connect("y")
	require.NoError(t, err)
	require.Equal(t, models.RoleGuest, role)

	roles := rec.named(sse.EventPlayerRole)
	require.Equal(t, []sent{
		{To: "x", Event: sse.EventPlayerRole, Payload: models.PlayerRole{IsHost: true}},
		{To: "y", Event: sse.EventPlayerRole, Payload: models.PlayerRole{IsHost: false}},
	}, roles)

	counts := rec.named(sse.EventUpdatePlayerCount)
	require.Len(t, counts, 2)
	require.Equal(t, "*", counts[1].To)
	require.Equal(t, 2, counts[1].Payload)
	require.Equal(t, map[string]int{"x": 0, "y": 0}, reg.Snapshot().Scores)
}

func TestRegistryRejectsThirdAndLater(t *testing.T) {
	reg, rec := newTable("x", "y")
	rec.reset()

	for i := 3; i <= 6; i++ {
		h := fmt.Sprintf("p%d", i)
		_, err := reg.Connect(h)
		require.ErrorIs(t, err, ErrRoomFull)
		snap := reg.Snapshot()
		for _, p := range snap.Seats {
			require.NotEqual(t, h, p.Handle)
		}
		_, inLedger := snap.Scores[h]
		require.False(t, inLedger)
	}
	require.Equal(t, 2, reg.Snapshot().Players)

	full := rec.named(sse.EventFullRoom)
	require.Len(t, full, 4)
	require.Equal(t, "p3", full[0].To)
	require.Empty(t, rec.named(sse.EventUpdatePlayerCount))

	// a rejected handle never held a seat, so its departure is a no-op
	require.ErrorIs(t, reg.Disconnect("p3"), ErrUnknownParticipant)
	require.Equal(t, 2, reg.Snapshot().Players)
}

func TestRegistryStartIgnoredWithOnePlayer(t *testing.T) {
	reg, rec := newTable("x")
	rec.reset()

	err := reg.StartGame("x", carry(true))
	require.ErrorIs(t, err, ErrNotEnoughPlayers)
	require.True(t, Ignorable(err))
	require.False(t, reg.Snapshot().InProgress)
	require.Empty(t, rec.all())
}

func TestRegistryUnknownHandleIgnored(t *testing.T) {
	reg, _ := newTable("x", "y")
	require.ErrorIs(t, reg.StartGame("z", carry(true)), ErrUnknownParticipant)
	require.NoError(t, reg.StartGame("y", carry(true)))
	_, err := reg.SubmitCard("z", 3)
	require.ErrorIs(t, err, ErrUnknownParticipant)
}

func TestRegistryScenarios(t *testing.T) {
	reg, rec := newTable("X", "Y")
	require.Equal(t, models.RoleHost, reg.Snapshot().Seats[0].Role)

	// Scenario A: carry-over game, X wins 5 vs 3
	require.NoError(t, reg.StartGame("X", carry(true)))
	snap := reg.Snapshot()
	require.Equal(t, map[string]int{"X": 0, "Y": 0}, snap.Scores)
	require.Equal(t, 1, snap.Jackpot)

	_, err := reg.SubmitCard("X", 5)
	require.NoError(t, err)
	out, err := reg.SubmitCard("Y", 3)
	require.NoError(t, err)
	require.Equal(t, "X", out.Winner)
	snap = reg.Snapshot()
	require.Equal(t, map[string]int{"X": 1, "Y": 0}, snap.Scores)
	require.Equal(t, 1, snap.Jackpot)
	require.Equal(t, "X", *snap.FirstPlayer)

	// Scenario B: Y leads out of turn, then 9 vs 9 draws and the jackpot grows
	rec.reset()
	_, err = reg.SubmitCard("Y", 4)
	require.ErrorIs(t, err, ErrNotYourTurn)
	require.Equal(t, []sent{{To: "Y", Event: sse.EventWarning, Payload: MsgNotYourTurn}}, rec.all())
	require.Equal(t, 0, reg.Snapshot().Pending)

	_, err = reg.SubmitCard("X", 9)
	require.NoError(t, err)
	out, err = reg.SubmitCard("Y", 9)
	require.NoError(t, err)
	require.True(t, out.Draw)
	snap = reg.Snapshot()
	require.Equal(t, 2, snap.Jackpot)
	require.Equal(t, map[string]int{"X": 1, "Y": 0}, snap.Scores)
	require.Nil(t, snap.FirstPlayer)

	// Scenario C: 1 upsets 9 and collects the carried jackpot
	_, err = reg.SubmitCard("X", 1)
	require.NoError(t, err)
	out, err = reg.SubmitCard("Y", 9)
	require.NoError(t, err)
	require.Equal(t, "X", out.Winner)
	require.Equal(t, 2, out.Stake)
	snap = reg.Snapshot()
	require.Equal(t, map[string]int{"X": 3, "Y": 0}, snap.Scores)
	require.Equal(t, 1, snap.Jackpot)

	// Scenario D: X leads, Y walks away mid-round
	_, err = reg.SubmitCard("X", 6)
	require.NoError(t, err)
	rec.reset()
	require.NoError(t, reg.Disconnect("Y"))

	snap = reg.Snapshot()
	require.False(t, snap.InProgress)
	require.Equal(t, 0, snap.Pending)
	require.Equal(t, map[string]int{"X": 3}, snap.Scores)
	require.Equal(t, models.StatusIdle, snap.Status)

	left, ok := rec.last(sse.EventPlayerLeft)
	require.True(t, ok)
	require.Equal(t, "*", left.To)
	count, _ := rec.last(sse.EventUpdatePlayerCount)
	require.Equal(t, 1, count.Payload)

	role, err := reg.Connect("Z")
	require.NoError(t, err)
	require.Equal(t, models.RoleGuest, role)
	require.Equal(t, map[string]int{"X": 3, "Z": 0}, reg.Snapshot().Scores)

	_, err = reg.SubmitCard("X", 2)
	require.ErrorIs(t, err, ErrNotPlaying)
}

func TestRegistryHostLeavingPromotesGuest(t *testing.T) {
	reg, rec := newTable("x", "y")
	rec.reset()

	require.NoError(t, reg.Disconnect("x"))
	parts := reg.Snapshot().Seats
	require.Len(t, parts, 1)
	require.Equal(t, "y", parts[0].Handle)
	require.Equal(t, models.RoleHost, parts[0].Role)

	ev, ok := rec.last(sse.EventPlayerRole)
	require.True(t, ok)
	require.Equal(t, "y", ev.To)
	require.Equal(t, models.PlayerRole{IsHost: true}, ev.Payload)
	require.Equal(t, "y", reg.Snapshot().Host)

	role, err := reg.Connect("z")
	require.NoError(t, err)
	require.Equal(t, models.RoleGuest, role)
}

func TestRegistryNewGameResetsScores(t *testing.T) {
	reg, _ := newTable("x", "y")
	require.NoError(t, reg.StartGame("x", carry(false)))
	_, _ = reg.SubmitCard("x", 8)
	_, _ = reg.SubmitCard("y", 2)
	require.Equal(t, 1, reg.Snapshot().Scores["x"])

	require.NoError(t, reg.StartGame("y", carry(true)))
	snap := reg.Snapshot()
	require.Equal(t, map[string]int{"x": 0, "y": 0}, snap.Scores)
	require.Equal(t, 1, snap.Jackpot)
	require.True(t, snap.CarryOver)
	require.Nil(t, snap.FirstPlayer)
}

func TestRegistryConnectIsIdempotentPerHandle(t *testing.T) {
	reg, _ := newTable("x")
	role, err := reg.Connect("x")
	require.NoError(t, err)
	require.Equal(t, models.RoleHost, role)
	require.Equal(t, 1, reg.Snapshot().Players)
}

func TestRegistrySnapshotListsSeats(t *testing.T) {
	reg, _ := newTable()
	joined := time.Date(2026, 3, 1, 20, 0, 0, 0, time.UTC)
	reg.now = func() time.Time { return joined }
	_, err := reg.Connect("x")
	require.NoError(t, err)
	reg.now = func() time.Time { return joined.Add(time.Minute) }
	_, err = reg.Connect("y")
	require.NoError(t, err)

	require.Equal(t, []models.Participant{
		{Handle: "x", Role: models.RoleHost, JoinedAt: joined},
		{Handle: "y", Role: models.RoleGuest, JoinedAt: joined.Add(time.Minute)},
	}, reg.Snapshot().Seats)

	// the promoted guest keeps its join time
	require.NoError(t, reg.Disconnect("x"))
	require.Equal(t, []models.Participant{
		{Handle: "y", Role: models.RoleHost, JoinedAt: joined.Add(time.Minute)},
	}, reg.Snapshot().Seats)
}

func TestRegistryStalledClientDoesNotBlockTable(t *testing.T) {
	hub := sse.NewHub(16)
	reg := NewRegistry(hub)
	x := hub.AddClient("x")
	y := hub.AddClient("y")
	// y never reads; its queue is already full
	for i := 0; i < 16; i++ {
		hub.Send("y", sse.EventMessage, i)
	}

	start := time.Now()
	_, err := reg.Connect("x")
	require.NoError(t, err)
	_, err = reg.Connect("y")
	require.NoError(t, err)
	require.NoError(t, reg.StartGame("x", carry(true)))
	_, err = reg.SubmitCard("x", 5)
	require.NoError(t, err)
	out, err := reg.SubmitCard("y", 3)
	require.NoError(t, err)
	require.Equal(t, "x", out.Winner)
	require.Less(t, time.Since(start), 500*time.Millisecond)

	select {
	case <-y.Done():
	default:
		t.Fatal("stalled client should be dropped")
	}

	var events []string
	for len(x.Messages()) > 0 {
		events = append(events, (<-x.Messages()).Event)
	}
	require.Contains(t, events, sse.EventRoundResult)
	require.Equal(t, sse.EventUpdateScore, events[len(events)-1])
}
