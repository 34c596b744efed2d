package game

import (
	"strings"
	"testing"
	"time"
)

func testMembers() []string {
	return []string{"Alice", "Bob", "Carol", "Dave"}
}

func TestNewGame_AssignsMasterAndSingleInsider(t *testing.T) {
	now := time.Now()

	g, err := NewGame(testMembers(), "PIANO", now)
	if err != nil {
		t.Fatalf("NewGame should succeed with 4 members, got: %v", err)
	}

	if g.Phase != PHASE_QUESTION {
		t.Fatalf("new game should be in question phase, got %q", g.Phase)
	}

	if got := g.MasterNickname(); got != "Alice" {
		t.Fatalf("first-joined member should be Master, got %q", got)
	}

	if got := g.RoleOf("Alice"); got != ROLE_MASTER {
		t.Fatalf("owner role should be Master, got %q", got)
	}

	insiders := 0
	for _, nickname := range testMembers() {
		if g.RoleOf(nickname) == ROLE_INSIDER {
			insiders++
		}
	}

	if insiders != 1 {
		t.Fatalf("exactly one Insider expected, got %d", insiders)
	}

	if g.InsiderNickname() == "Alice" {
		t.Fatalf("owner must never be the Insider")
	}

	if !g.QuestionEnd.Equal(now.Add(QUESTION_PHASE_DURATION)) {
		t.Fatalf("question deadline should be now+5m, got %v", g.QuestionEnd)
	}
}

func TestNewGame_RejectsInsufficientPlayers(t *testing.T) {
	g, err := NewGame([]string{"Alice", "Bob", "Carol"}, "PIANO", time.Now())
	if err == nil {
		t.Fatalf("NewGame with 3 members should fail")
	}

	if g != nil {
		t.Fatalf("no game should be created on rejection")
	}
}

func TestCastVote_OnlyDuringVotingAndOverwrites(t *testing.T) {
	now := time.Now()

	g, err := NewGame(testMembers(), "PIANO", now)
	if err != nil {
		t.Fatalf("NewGame failed: %v", err)
	}

	if g.CastVote("Bob", "Carol") {
		t.Fatalf("vote during question phase should be a no-op")
	}

	if !g.BeginVoting(now) {
		t.Fatalf("BeginVoting from question phase should succeed")
	}

	if !g.CastVote("Bob", "Carol") {
		t.Fatalf("vote during voting phase should be recorded")
	}

	// 改票：同一投票者的后一票覆盖前一票
	if !g.CastVote("Bob", "Dave") {
		t.Fatalf("re-vote should be accepted")
	}

	if got := g.VoterCount(); got != 1 {
		t.Fatalf("re-vote must not add a second voter, got %d", got)
	}

	outcome := g.Resolve()
	if outcome.Accused != "Dave" {
		t.Fatalf("re-vote should replace the prior choice, accused %q", outcome.Accused)
	}
}

func TestBeginVoting_IsIdempotentPerPhase(t *testing.T) {
	now := time.Now()

	g, err := NewGame(testMembers(), "PIANO", now)
	if err != nil {
		t.Fatalf("NewGame failed: %v", err)
	}

	if !g.MarkWordGuessed(now) {
		t.Fatalf("word-guessed from question phase should succeed")
	}

	if g.Phase != PHASE_VOTING {
		t.Fatalf("word-guessed should move the game to voting, got %q", g.Phase)
	}

	if g.MarkWordGuessed(now) {
		t.Fatalf("word-guessed outside question phase should be a no-op")
	}

	if !g.VotingEnd.Equal(now.Add(VOTING_PHASE_DURATION)) {
		t.Fatalf("voting deadline should be now+1m, got %v", g.VotingEnd)
	}
}

func TestPause_OnlyFreezesActiveGames(t *testing.T) {
	now := time.Now()

	g, err := NewGame(testMembers(), "PIANO", now)
	if err != nil {
		t.Fatalf("NewGame failed: %v", err)
	}

	if !g.Pause() {
		t.Fatalf("active game should be pausable")
	}

	if g.Phase != PHASE_PAUSED {
		t.Fatalf("paused game should report paused phase, got %q", g.Phase)
	}

	if g.Pause() {
		t.Fatalf("pausing a paused game should be a no-op")
	}

	g.Phase = PHASE_FINISHED
	if g.Pause() {
		t.Fatalf("finished game must not be pausable")
	}
}

func TestResolve_InsiderCaughtMeansCommonsWin(t *testing.T) {
	now := time.Now()

	g, err := NewGame(testMembers(), "PIANO", now)
	if err != nil {
		t.Fatalf("NewGame failed: %v", err)
	}

	insider := g.InsiderNickname()

	// 除 Insider 外随便挑一个替罪羊
	var decoy string
	for _, nickname := range testMembers() {
		if nickname != insider {
			decoy = nickname
			break
		}
	}

	g.MarkWordGuessed(now)

	g.CastVote("Alice", insider)
	g.CastVote("Bob", insider)
	g.CastVote("Carol", decoy)

	outcome := g.Resolve()

	if g.Phase != PHASE_FINISHED {
		t.Fatalf("resolve should finish the game, got %q", g.Phase)
	}

	if !outcome.InsiderCaught {
		t.Fatalf("plurality on the Insider should count as caught")
	}

	if !strings.Contains(outcome.Text(), "Commons and Master win") {
		t.Fatalf("outcome text should announce Commons and Master win, got %q", outcome.Text())
	}
}

func TestResolve_WordNeverGuessedMeansEveryoneLoses(t *testing.T) {
	now := time.Now()

	g, err := NewGame(testMembers(), "PIANO", now)
	if err != nil {
		t.Fatalf("NewGame failed: %v", err)
	}

	// 提问阶段超时路径：进入投票但词没被猜中
	g.BeginVoting(now)

	insider := g.InsiderNickname()
	g.CastVote("Alice", insider)
	g.CastVote("Bob", insider)
	g.CastVote("Carol", insider)

	outcome := g.Resolve()

	if outcome.InsiderCaught {
		t.Fatalf("without the word guessed nobody wins, regardless of votes")
	}

	if !strings.Contains(outcome.Text(), "everyone loses") {
		t.Fatalf("outcome text should announce that everyone loses, got %q", outcome.Text())
	}

	if !strings.Contains(outcome.Text(), "PIANO") {
		t.Fatalf("outcome text should reveal the word, got %q", outcome.Text())
	}
}

func TestResolve_InsiderEscapesOnWrongPlurality(t *testing.T) {
	now := time.Now()

	g, err := NewGame(testMembers(), "PIANO", now)
	if err != nil {
		t.Fatalf("NewGame failed: %v", err)
	}

	insider := g.InsiderNickname()

	var decoy string
	for _, nickname := range testMembers() {
		if nickname != insider {
			decoy = nickname
			break
		}
	}

	g.MarkWordGuessed(now)

	g.CastVote("Alice", decoy)
	g.CastVote("Bob", decoy)
	g.CastVote("Carol", insider)

	outcome := g.Resolve()

	if outcome.InsiderCaught {
		t.Fatalf("plurality missed the Insider, they should escape")
	}

	if !strings.Contains(outcome.Text(), "The Insider wins") {
		t.Fatalf("outcome text should announce the Insider's win, got %q", outcome.Text())
	}

	if !strings.Contains(outcome.Text(), "PIANO") {
		t.Fatalf("outcome text should reveal the word, got %q", outcome.Text())
	}
}

func TestResolve_TieBreaksOnFirstVotedTarget(t *testing.T) {
	now := time.Now()

	g, err := NewGame(testMembers(), "PIANO", now)
	if err != nil {
		t.Fatalf("NewGame failed: %v", err)
	}

	g.MarkWordGuessed(now)

	// 1:1 平票，先被投到的目标胜出
	g.CastVote("Alice", "Bob")
	g.CastVote("Carol", "Dave")

	outcome := g.Resolve()

	if outcome.Accused != "Bob" {
		t.Fatalf("tie should break to the first-voted target, accused %q", outcome.Accused)
	}
}

func TestSnapshot_HidesWordAndRoles(t *testing.T) {
	now := time.Now()

	g, err := NewGame(testMembers(), "PIANO", now)
	if err != nil {
		t.Fatalf("NewGame failed: %v", err)
	}

	g.MarkWordGuessed(now)
	g.CastVote("Bob", "Carol")

	snapshot := g.Snapshot()

	if snapshot.Phase != PHASE_VOTING {
		t.Fatalf("snapshot phase mismatch, got %q", snapshot.Phase)
	}

	if snapshot.Master != "Alice" {
		t.Fatalf("snapshot should expose the Master nickname, got %q", snapshot.Master)
	}

	if !snapshot.WordGuessed {
		t.Fatalf("snapshot should carry the word-guessed flag")
	}

	if snapshot.QuestionPhaseEnd != g.QuestionEnd.UnixMilli() {
		t.Fatalf("question deadline should be epoch millis, got %d", snapshot.QuestionPhaseEnd)
	}

	if snapshot.VotingPhaseEnd != g.VotingEnd.UnixMilli() {
		t.Fatalf("voting deadline should be epoch millis, got %d", snapshot.VotingPhaseEnd)
	}

	if got := snapshot.Votes["Bob"]; got != "Carol" {
		t.Fatalf("snapshot votes mismatch, got %q", got)
	}

	// 快照里的投票表是副本，改动它不能影响游戏本体
	snapshot.Votes["Dave"] = "Alice"
	if g.VoterCount() != 1 {
		t.Fatalf("mutating the snapshot must not touch the game state")
	}
}
