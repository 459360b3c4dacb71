package repositories

import (
	"encoding/json"
	"reflect"
	"testing"
)

func raw(s string) json.RawMessage { return json.RawMessage(s) }

func TestMergeDraftAssociative(t *testing.T) {
	stepService := map[string]json.RawMessage{"service_id": raw(`3`)}
	stepItems := map[string]json.RawMessage{"items": raw(`{"7":2}`)}
	stepAddress := map[string]json.RawMessage{"address": raw(`{"city":"Almaty"}`)}

	oneByOne := MergeDraft(MergeDraft(MergeDraft(nil, stepService), stepItems), stepAddress)
	grouped := MergeDraft(MergeDraft(nil, stepService), MergeDraft(stepItems, stepAddress))

	if !reflect.DeepEqual(oneByOne, grouped) {
		t.Fatalf("expected %v got %v", oneByOne, grouped)
	}
	if len(oneByOne) != 3 {
		t.Fatalf("expected 3 keys got %d", len(oneByOne))
	}
}

func TestMergeDraftUpdateWins(t *testing.T) {
	base := map[string]json.RawMessage{
		"service_id":  raw(`3`),
		"description": raw(`"old"`),
	}
	update := map[string]json.RawMessage{"description": raw(`"new"`)}

	merged := MergeDraft(base, update)

	if string(merged["description"]) != `"new"` {
		t.Fatalf("expected %q got %q", `"new"`, merged["description"])
	}
	if string(merged["service_id"]) != "3" {
		t.Fatalf("untouched key changed: %q", merged["service_id"])
	}
	if string(base["description"]) != `"old"` {
		t.Fatalf("base mutated: %q", base["description"])
	}
}

func TestBuildQuote(t *testing.T) {
	draft := map[string]json.RawMessage{
		"service_id": raw(`3`),
		"items":      raw(`{"7":2,"9":1}`),
		"address":    raw(`{"city":"Almaty","latitude":43.24,"longitude":76.95}`),
	}

	quote, err := BuildQuote(draft)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if quote.ServiceID != 3 {
		t.Fatalf("expected service 3 got %d", quote.ServiceID)
	}
	if quote.Items[7] != 2 || quote.Items[9] != 1 {
		t.Fatalf("unexpected items: %v", quote.Items)
	}
	if quote.Address.City != "Almaty" {
		t.Fatalf("unexpected city %q", quote.Address.City)
	}
	if quote.Address.Latitude == nil || *quote.Address.Latitude != 43.24 {
		t.Fatalf("latitude not carried over")
	}
}

func TestBuildQuoteBadPayload(t *testing.T) {
	draft := map[string]json.RawMessage{"service_id": raw(`"not-a-number"`)}
	if _, err := BuildQuote(draft); err == nil {
		t.Fatal("expected error for malformed draft")
	}
}
