package models

import (
	"fmt"
	"testing"
)

func TestMessageLog_ArrivalOrder(t *testing.T) {
	var log MessageLog

	for i := 0; i < 5; i++ {
		frame := fmt.Sprintf(`{"choices":[{"message":{"content":"answer %d"}}]}`, i)
		if _, err := log.Ingest([]byte(frame)); err != nil {
			t.Fatalf("Ingest(%d) returned error: %v", i, err)
		}
	}

	if log.Len() != 5 {
		t.Fatalf("Len() = %d, want 5", log.Len())
	}
	for i, msg := range log.Messages() {
		want := fmt.Sprintf("answer %d", i)
		if msg.Answer() != want {
			t.Errorf("message %d Answer() = %q, want %q", i, msg.Answer(), want)
		}
	}
}

func TestMessageLog_MalformedFrameDropped(t *testing.T) {
	var log MessageLog

	frames := []string{`{"citations":["a"]}`, `{broken`, `{"citations":["b"]}`}
	var errs int
	for _, f := range frames {
		if _, err := log.Ingest([]byte(f)); err != nil {
			errs++
		}
	}

	if errs != 1 {
		t.Errorf("errors = %d, want 1", errs)
	}
	if log.Len() != 2 {
		t.Fatalf("Len() = %d, want 2", log.Len())
	}
	if got := log.Messages()[1].Citations()[0]; got != "b" {
		t.Errorf("second message citation = %q, want b", got)
	}
}

func TestMessageLog_NoDedup(t *testing.T) {
	var log MessageLog
	for i := 0; i < 3; i++ {
		_, _ = log.Ingest([]byte(`{}`))
	}
	if log.Len() != 3 {
		t.Errorf("Len() = %d, want 3", log.Len())
	}
}

func TestMessageLog_LatestAnswer(t *testing.T) {
	var log MessageLog

	if _, ok := log.LatestAnswer(); ok {
		t.Error("LatestAnswer() on empty log should report false")
	}

	_, _ = log.Ingest([]byte(`{"choices":[{"message":{"content":"first"}}]}`))
	_, _ = log.Ingest([]byte(`{"citations":["x"]}`))

	answer, ok := log.LatestAnswer()
	if !ok || answer != "first" {
		t.Errorf("LatestAnswer() = %q, %v; want first, true", answer, ok)
	}

	_, _ = log.Ingest([]byte(`{"choices":[{"message":{"content":"second"}}]}`))
	if answer, _ := log.LatestAnswer(); answer != "second" {
		t.Errorf("LatestAnswer() = %q, want second", answer)
	}
}
