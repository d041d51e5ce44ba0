package bot

import (
	"context"
	"errors"
	"strings"
	"testing"
)

func newRequest() PromptRequest {
	return PromptRequest{
		ChatId: chatId,
		UserId: userId,
		Text:   "a lighthouse",
		Style:  "sketch",
		Suffix: "as a pencil sketch",
	}
}

func TestDispatchCallsEverySizeInOrder(t *testing.T) {
	f := newFixture()
	d := f.controller.dispatcher

	outcomes := d.Dispatch(context.Background(), newRequest())

	want := []string{"256x256", "512x512", "1024x1024"}
	if len(f.generator.calls) != len(want) {
		t.Fatalf("expected %d calls, got %d", len(want), len(f.generator.calls))
	}
	for i, size := range want {
		if f.generator.calls[i].size != size {
			t.Errorf("call %d: expected %s, got %s", i, size, f.generator.calls[i].size)
		}
		if f.generator.calls[i].prompt != "a lighthouse, as a pencil sketch" {
			t.Errorf("call %d: unexpected prompt %q", i, f.generator.calls[i].prompt)
		}
		if outcomes[i].ImageURL == "" {
			t.Errorf("outcome %d: missing url", i)
		}
	}
}

func TestDispatchIsolatesFailure(t *testing.T) {
	f := newFixture()
	f.generator.fail["512x512"] = errors.New("content policy violation")

	outcomes := f.controller.dispatcher.Dispatch(context.Background(), newRequest())

	if len(f.generator.calls) != 3 {
		t.Fatalf("expected 3 calls, got %d", len(f.generator.calls))
	}
	if len(outcomes) != 3 || outcomes[1].Err == nil || outcomes[0].Err != nil || outcomes[2].Err != nil {
		t.Fatalf("unexpected outcomes %+v", outcomes)
	}

	msgs := f.messenger.messages()
	if len(msgs) != 4 {
		t.Fatalf("expected 4 messages, got %+v", msgs)
	}
	if msgs[0].text != waitText {
		t.Errorf("expected wait message first, got %+v", msgs[0])
	}
	if msgs[1].kind != "photo" || msgs[1].text != "Size: 256x256" {
		t.Errorf("unexpected first delivery %+v", msgs[1])
	}
	if msgs[2].kind != "text" || !strings.HasPrefix(msgs[2].text, "Error: ") || !strings.Contains(msgs[2].text, "content policy violation") {
		t.Errorf("unexpected error delivery %+v", msgs[2])
	}
	if msgs[3].kind != "photo" || msgs[3].text != "Size: 1024x1024" {
		t.Errorf("unexpected last delivery %+v", msgs[3])
	}
}

func TestDispatchJournalsOutcomes(t *testing.T) {
	f := newFixture()
	f.generator.fail["1024x1024"] = errors.New("timeout")

	f.controller.dispatcher.Dispatch(context.Background(), newRequest())

	recs, _ := f.journal.Recent(userId, 0)
	if len(recs) != 3 {
		t.Fatalf("expected 3 records, got %d", len(recs))
	}
	if !recs[0].Failed() || recs[0].Size != "1024x1024" {
		t.Errorf("newest record should be the failed large size, got %+v", recs[0])
	}
	if recs[0].RequestId == "" || recs[0].RequestId != recs[2].RequestId {
		t.Error("records of one prompt should share a request id")
	}
	if recs[2].Prompt != "a lighthouse, as a pencil sketch" || recs[2].Style != "sketch" {
		t.Errorf("unexpected record %+v", recs[2])
	}
}

func TestDispatchContinuesWhenSendFails(t *testing.T) {
	f := newFixture()
	f.messenger.failSend = true

	outcomes := f.controller.dispatcher.Dispatch(context.Background(), newRequest())

	if len(outcomes) != 3 || len(f.generator.calls) != 3 {
		t.Errorf("send failures should not stop the chain, got %d outcomes", len(outcomes))
	}
}

func TestDispatchStopsOnShutdown(t *testing.T) {
	f := newFixture()
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	outcomes := f.controller.dispatcher.Dispatch(ctx, newRequest())

	if len(outcomes) != 0 || len(f.generator.calls) != 0 {
		t.Errorf("expected no calls after cancellation, got %d", len(f.generator.calls))
	}
}
