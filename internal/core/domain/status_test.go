package domain

import "testing"

func TestProcessingStatus_IsTerminal(t *testing.T) {
	tests := []struct {
		state ProcessingState
		want  bool
	}{
		{StateIdle, false},
		{StateProcessing, false},
		{StateDeleting, false},
		{StateCompleted, true},
		{StateFailed, true},
	}

	for _, tt := range tests {
		status := ProcessingStatus{State: tt.state}
		if got := status.IsTerminal(); got != tt.want {
			t.Errorf("IsTerminal() for %q = %v, want %v", tt.state, got, tt.want)
		}
	}
}

func TestProcessingStatus_IsActive(t *testing.T) {
	tests := []struct {
		state ProcessingState
		want  bool
	}{
		{StateIdle, false},
		{StateProcessing, true},
		{StateDeleting, true},
		{StateCompleted, false},
		{StateFailed, false},
	}

	for _, tt := range tests {
		status := ProcessingStatus{State: tt.state}
		if got := status.IsActive(); got != tt.want {
			t.Errorf("IsActive() for %q = %v, want %v", tt.state, got, tt.want)
		}
	}
}

func TestIdle(t *testing.T) {
	status := Idle()
	if status.State != StateIdle {
		t.Errorf("Idle().State = %q, want %q", status.State, StateIdle)
	}
	if status.Progress != 0 || status.DocumentID != "" {
		t.Errorf("Idle() should carry no operation details, got %+v", status)
	}
}
