package testutil

import (
	"context"
	"errors"
	"strings"
	"sync"
	"testing"
)

func TestMockRunner_RecordsCalls(t *testing.T) {
	mock := NewMockRunner()
	mock.SetResponse("xdg-open", []string{"https://example.org/a"}, nil)

	_, err := mock.Run(context.Background(), "xdg-open", "https://example.org/a")
	if err != nil {
		t.Fatalf("Run() error = %v", err)
	}

	calls := mock.GetCalls()
	if len(calls) != 1 {
		t.Fatalf("len(calls) = %d, want 1", len(calls))
	}
	if calls[0].Name != "xdg-open" || len(calls[0].Args) != 1 || calls[0].Args[0] != "https://example.org/a" {
		t.Errorf("call = %+v", calls[0])
	}
}

func TestMockRunner_Responses(t *testing.T) {
	boom := errors.New("no display")

	tests := []struct {
		name    string
		setup   func(*MockRunner)
		cmd     string
		args    []string
		want    string
		wantErr error
	}{
		{
			name:  "exact response",
			setup: func(m *MockRunner) { m.SetResponse("open", []string{"https://x"}, []byte("ok")) },
			cmd:   "open", args: []string{"https://x"},
			want: "ok",
		},
		{
			name: "error wins over response",
			setup: func(m *MockRunner) {
				m.SetResponse("open", []string{"https://x"}, []byte("ok"))
				m.SetError("open", []string{"https://x"}, boom)
			},
			cmd: "open", args: []string{"https://x"},
			wantErr: boom,
		},
		{
			name:  "prefix response",
			setup: func(m *MockRunner) { m.Responses["xdg-open"] = []byte("any") },
			cmd:   "xdg-open", args: []string{"https://example.org/long/path"},
			want: "any",
		},
		{
			name:  "no args",
			setup: func(m *MockRunner) { m.Responses["true"] = []byte("") },
			cmd:   "true",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mock := NewMockRunner()
			tt.setup(mock)
			out, err := mock.Run(context.Background(), tt.cmd, tt.args...)
			if tt.wantErr != nil {
				if !errors.Is(err, tt.wantErr) {
					t.Errorf("Run() error = %v, want %v", err, tt.wantErr)
				}
				if out != nil {
					t.Errorf("Run() output = %q with error, want nil", out)
				}
				return
			}
			if err != nil {
				t.Fatalf("Run() error = %v", err)
			}
			if string(out) != tt.want {
				t.Errorf("Run() = %q, want %q", out, tt.want)
			}
		})
	}
}

func TestMockRunner_UnexpectedCommand(t *testing.T) {
	mock := NewMockRunner()
	_, err := mock.Run(context.Background(), "firefox", "https://x")
	if err == nil || !strings.Contains(err.Error(), "unexpected command: firefox https://x") {
		t.Errorf("Run() error = %v, want unexpected command", err)
	}
}

func TestMockRunner_GetCallsReturnsCopy(t *testing.T) {
	mock := NewMockRunner()
	mock.Responses["open"] = nil
	_, _ = mock.Run(context.Background(), "open")

	calls := mock.GetCalls()
	calls[0].Name = "modified"
	if mock.GetCalls()[0].Name != "open" {
		t.Error("GetCalls should return a copy")
	}

	mock.Reset()
	if len(mock.GetCalls()) != 0 {
		t.Error("Reset did not clear calls")
	}
}

func TestMockRunner_Concurrent(t *testing.T) {
	mock := NewMockRunner()
	mock.Responses["open"] = nil

	var wg sync.WaitGroup
	for i := 0; i < 10; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, _ = mock.Run(context.Background(), "open", "https://x")
		}()
	}
	wg.Wait()

	if got := len(mock.GetCalls()); got != 10 {
		t.Errorf("len(calls) = %d, want 10", got)
	}
}
