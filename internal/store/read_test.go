package store

import (
	"context"
	"errors"
	"slices"
	"testing"
)

func TestReadRun_NotFound(t *testing.T) {
	s := createTestStore(t)

	_, err := s.ReadRun(context.Background(), "missing")
	if !errors.Is(err, ErrRunNotFound) {
		t.Errorf("ReadRun() error = %v, want ErrRunNotFound", err)
	}
}

func TestListRuns_Empty(t *testing.T) {
	s := createTestStore(t)

	runs, err := s.ListRuns(context.Background())
	if err != nil {
		t.Fatalf("ListRuns() failed: %v", err)
	}
	if runs == nil {
		t.Error("runs is nil, want empty slice")
	}
}

func TestListRuns_Ordered(t *testing.T) {
	s := createTestStore(t)
	ctx := context.Background()

	for _, r := range []Run{
		{Token: "t2", Scenario: "zeta", Symbols: "ab", Width: 1, Strategy: "bijective"},
		{Token: "t3", Scenario: "alpha", Symbols: "ab", Width: 1, Strategy: "bijective"},
		{Token: "t1", Scenario: "alpha", Symbols: "ab", Width: 1, Strategy: "bijective"},
	} {
		if err := s.WriteRun(ctx, r); err != nil {
			t.Fatalf("WriteRun(%s) failed: %v", r.Token, err)
		}
	}

	runs, err := s.ListRuns(ctx)
	if err != nil {
		t.Fatalf("ListRuns() failed: %v", err)
	}

	var tokens []string
	for _, r := range runs {
		tokens = append(tokens, r.Token)
	}
	if want := []string{"t1", "t3", "t2"}; !slices.Equal(tokens, want) {
		t.Errorf("ListRuns() tokens = %v, want %v", tokens, want)
	}
}

func TestReadEvents_OrderedBySeq(t *testing.T) {
	s := createTestStore(t)
	ctx := context.Background()

	if err := s.WriteRun(ctx, testRun("run-1")); err != nil {
		t.Fatalf("WriteRun() failed: %v", err)
	}
	for _, seq := range []int64{3, 1, 2} {
		ev := Event{RunToken: "run-1", Seq: seq, Kind: "ok", Op: "between", Payload: `{"result":"n"}`}
		if err := s.WriteEvent(ctx, ev); err != nil {
			t.Fatalf("WriteEvent(%d) failed: %v", seq, err)
		}
	}
	// duplicate seq is ignored
	if err := s.WriteEvent(ctx, Event{RunToken: "run-1", Seq: 2, Kind: "invalid_order", Op: "between", Payload: "{}"}); err != nil {
		t.Fatalf("duplicate WriteEvent() failed: %v", err)
	}

	events, err := s.ReadEvents(ctx, "run-1")
	if err != nil {
		t.Fatalf("ReadEvents() failed: %v", err)
	}
	if len(events) != 3 {
		t.Fatalf("len(events) = %d, want 3", len(events))
	}
	for i, ev := range events {
		if ev.Seq != int64(i+1) {
			t.Errorf("events[%d].Seq = %d, want %d", i, ev.Seq, i+1)
		}
		if ev.Kind != "ok" {
			t.Errorf("events[%d].Kind = %q, want ok", i, ev.Kind)
		}
	}
}

func TestReadEvents_Empty(t *testing.T) {
	s := createTestStore(t)

	events, err := s.ReadEvents(context.Background(), "nothing")
	if err != nil {
		t.Fatalf("ReadEvents() failed: %v", err)
	}
	if events == nil || len(events) != 0 {
		t.Errorf("ReadEvents() = %v, want empty slice", events)
	}
}

func TestRanksInOrder_BinaryCollation(t *testing.T) {
	s := createTestStore(t)
	ctx := context.Background()

	if err := s.WriteRun(ctx, testRun("run-1")); err != nil {
		t.Fatalf("WriteRun() failed: %v", err)
	}
	if err := s.WriteRanks(ctx, "run-1", 1, []string{"an", "b", "azn"}); err != nil {
		t.Fatalf("WriteRanks() failed: %v", err)
	}
	if err := s.WriteRanks(ctx, "run-1", 2, []string{"az", "an", "B"}); err != nil {
		t.Fatalf("WriteRanks() failed: %v", err)
	}

	got, err := s.RanksInOrder(ctx, "run-1")
	if err != nil {
		t.Fatalf("RanksInOrder() failed: %v", err)
	}
	want := []string{"B", "an", "az", "azn", "b"}
	if !slices.Equal(got, want) {
		t.Errorf("RanksInOrder() = %v, want %v", got, want)
	}
}
