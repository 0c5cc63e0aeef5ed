package domain

import (
	"context"
	"errors"
	"testing"
)

func TestParseFlowState(t *testing.T) {
	tests := []struct {
		in      string
		want    FlowState
		wantErr bool
	}{
		{in: "Normal", want: FlowNormal},
		{in: "CheckIn", want: FlowCheckIn},
		{in: "SuicideRisk", want: FlowSuicideRisk},
		{in: "normal", wantErr: true},
		{in: "", wantErr: true},
		{in: "InvalidContext", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := ParseFlowState(tt.in)
			if tt.wantErr {
				if !errors.Is(err, ErrInvalidFlowState) {
					t.Fatalf("expected ErrInvalidFlowState, got %v", err)
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if got != tt.want {
				t.Errorf("got %q, want %q", got, tt.want)
			}
		})
	}
}

func TestFlowState_OrDefault(t *testing.T) {
	if got := FlowState("").OrDefault(); got != FlowNormal {
		t.Errorf("zero value: got %q, want Normal", got)
	}
	if got := FlowCheckIn.OrDefault(); got != FlowCheckIn {
		t.Errorf("valid value changed: got %q", got)
	}
}

func TestFlowStateNames(t *testing.T) {
	if got := FlowStateNames(); got != "Normal,CheckIn,SuicideRisk" {
		t.Errorf("got %q", got)
	}
}

func TestIntent_String(t *testing.T) {
	if IntentFAQ.String() != "FAQ" || IntentSuicideRisk.String() != "SuicideRisk" || IntentNormal.String() != "Normal" {
		t.Error("unexpected intent names")
	}
	if Intent(42).String() != "Unknown" {
		t.Error("out of range intent should be Unknown")
	}
}

func TestLifecycleHooks_Merge(t *testing.T) {
	var calls []string
	a := LifecycleHooks{OnFlowChange: func(context.Context, *FlowEvent) { calls = append(calls, "a") }}
	b := LifecycleHooks{
		OnFlowChange:     func(context.Context, *FlowEvent) { calls = append(calls, "b") },
		OnIntentDetected: func(context.Context, *IntentEvent) { calls = append(calls, "intent") },
	}

	merged := a.Merge(b)
	merged.OnFlowChange(context.Background(), &FlowEvent{})
	merged.OnIntentDetected(context.Background(), &IntentEvent{})

	want := []string{"a", "b", "intent"}
	if len(calls) != len(want) {
		t.Fatalf("got %v, want %v", calls, want)
	}
	for i := range want {
		if calls[i] != want[i] {
			t.Fatalf("got %v, want %v", calls, want)
		}
	}
}

func TestParseIntent(t *testing.T) {
	for _, in := range []Intent{IntentFAQ, IntentSuicideRisk, IntentNormal} {
		got, err := ParseIntent(in.String())
		if err != nil || got != in {
			t.Errorf("ParseIntent(%q) = %v, %v", in.String(), got, err)
		}
	}
	if _, err := ParseIntent("Unknown"); err == nil {
		t.Error("expected error for unknown intent")
	}
}
