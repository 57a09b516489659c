package sync

import (
	"context"
	"testing"

	"gomarketsync/internal/channels"
)

func TestDispatcherRoutesToWiredAdapter(t *testing.T) {
	adapter := &fakeAdapter{channel: channels.ChannelStorefront, result: NewSuccess("ok", nil)}
	dispatcher := NewDispatcher(adapter)

	builder, failure := dispatcher.For("storefront", testAccount())
	if failure != nil {
		t.Fatalf("routing to a wired channel should succeed, got %q", failure.Message)
	}

	result := builder.Create(10).Push(context.Background())
	if !result.Success {
		t.Errorf("expected success from the wired adapter, got %q", result.Message)
	}
	if len(adapter.executed) != 1 {
		t.Errorf("expected one executed operation, got %d", len(adapter.executed))
	}
}

func TestDispatcherUnsupportedChannel(t *testing.T) {
	adapter := &fakeAdapter{channel: channels.ChannelStorefront}
	dispatcher := NewDispatcher(adapter)

	builder, failure := dispatcher.For("fancy-marketplace", testAccount())
	if builder != nil {
		t.Error("unknown channel name should not produce a builder")
	}
	if failure == nil {
		t.Fatal("unknown channel name should produce a structured failure")
	}
	if failure.Success {
		t.Error("unsupported channel result should not be successful")
	}
	if len(adapter.executed) != 0 || adapter.testCalls != 0 {
		t.Error("unknown channel name must not reach any adapter")
	}
}

func TestDispatcherKnownButUnwiredChannel(t *testing.T) {
	dispatcher := NewDispatcher()

	builder, failure := dispatcher.For("auction", testAccount())
	if builder != nil {
		t.Error("unwired channel should not produce a builder")
	}
	if failure == nil {
		t.Fatal("unwired channel should produce a structured failure")
	}
	if failure.Success {
		t.Error("not-implemented result should not be successful")
	}
}

func TestDispatcherSupports(t *testing.T) {
	dispatcher := NewDispatcher(&fakeAdapter{channel: channels.ChannelAuction})

	if !dispatcher.Supports(channels.ChannelAuction) {
		t.Error("auction adapter is wired and should be supported")
	}
	if dispatcher.Supports(channels.ChannelStorefront) {
		t.Error("storefront adapter is not wired and should not be supported")
	}
}
