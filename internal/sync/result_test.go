package sync

import (
	"errors"
	"testing"
)

func TestNewSuccessCopiesData(t *testing.T) {
	data := map[string]interface{}{DataKeyRemoteProductID: "42"}
	result := NewSuccess("created", data)

	if !result.Success {
		t.Error("NewSuccess should produce a successful result")
	}
	if len(result.Errors) != 0 {
		t.Errorf("successful result should carry no errors, got %v", result.Errors)
	}

	data[DataKeyRemoteProductID] = "changed"
	if result.Data[DataKeyRemoteProductID] != "42" {
		t.Error("mutating the source map should not affect the result")
	}
}

func TestNewFailureKeepsErrorOrder(t *testing.T) {
	result := NewFailure("sync failed", "first", "second")

	if result.Success {
		t.Error("NewFailure should produce a failed result")
	}
	if len(result.Errors) != 2 || result.Errors[0] != "first" || result.Errors[1] != "second" {
		t.Errorf("error order should be preserved, got %v", result.Errors)
	}
}

func TestNewTransportFailure(t *testing.T) {
	result := NewTransportFailure("create", errors.New("connection refused"))

	if result.Success {
		t.Error("transport failure should produce a failed result")
	}
	if result.Message != "create failed" {
		t.Errorf("unexpected message %q", result.Message)
	}
	if len(result.Errors) != 1 || result.Errors[0] != "connection refused" {
		t.Errorf("transport error should land in the error list, got %v", result.Errors)
	}
}

func TestWithMetadataDoesNotMutateOriginal(t *testing.T) {
	original := NewSuccess("ok", nil)
	annotated := original.WithMetadata("duration", "120ms")

	if original.Metadata != nil {
		t.Error("WithMetadata should not mutate the original result")
	}
	if annotated.Metadata["duration"] != "120ms" {
		t.Errorf("annotated result should carry the metadata, got %v", annotated.Metadata)
	}
}

func TestWithDataDoesNotMutateOriginal(t *testing.T) {
	original := NewSuccess("ok", map[string]interface{}{"a": 1})
	extended := original.WithData("b", 2)

	if _, ok := original.Data["b"]; ok {
		t.Error("WithData should not mutate the original result")
	}
	if extended.Data["a"] != 1 || extended.Data["b"] != 2 {
		t.Errorf("extended result should carry both keys, got %v", extended.Data)
	}
}
