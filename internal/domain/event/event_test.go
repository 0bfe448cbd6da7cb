package event

import "testing"

func TestNew_GeneratesIdentity(t *testing.T) {
	evt := New(TypeStageChanged, "r1", map[string]interface{}{"stage": "FINANCE_APPROVAL"})

	if evt.ID == "" {
		t.Error("event ID must be generated")
	}
	if evt.CorrelationID == "" {
		t.Error("correlation ID must be generated")
	}
	if evt.Timestamp.IsZero() {
		t.Error("timestamp must be set")
	}
	if evt.RequestID != "r1" {
		t.Errorf("RequestID = %s, want r1", evt.RequestID)
	}

	other := New(TypeStageChanged, "r1", nil)
	if other.ID == evt.ID {
		t.Error("two events must not share an ID")
	}
}

func TestNewWithCorrelation_LinksChain(t *testing.T) {
	first := New(TypeStageChanged, "r1", nil)
	second := NewWithCorrelation(TypeRequestClosed, "r1", nil, first.CorrelationID)

	if second.CorrelationID != first.CorrelationID {
		t.Error("correlation ID must carry over")
	}
	if second.ID == first.ID {
		t.Error("linked events must still have distinct IDs")
	}
}

func TestWithPayload_DoesNotMutateReceiver(t *testing.T) {
	evt := New(TypeRequestCreated, "r1", map[string]interface{}{"a": 1})

	enriched := evt.WithPayload("b", 2)

	if _, ok := evt.Payload["b"]; ok {
		t.Error("WithPayload mutated the original event")
	}
	if enriched.PayloadInt("b") != 2 {
		t.Errorf("enriched payload b = %d, want 2", enriched.PayloadInt("b"))
	}
	if enriched.ID != evt.ID {
		t.Error("WithPayload must preserve event identity")
	}
}

func TestPayloadAccessors(t *testing.T) {
	evt := New(TypeStageChanged, "r1", map[string]interface{}{
		"stage":   "MD_APPROVAL",
		"version": int64(3),
		"count":   2,
		"ratio":   1.5,
	})

	if got := evt.PayloadString("stage"); got != "MD_APPROVAL" {
		t.Errorf("PayloadString = %q", got)
	}
	if got := evt.PayloadInt("version"); got != 3 {
		t.Errorf("PayloadInt(version) = %d", got)
	}
	if got := evt.PayloadInt("count"); got != 2 {
		t.Errorf("PayloadInt(count) = %d", got)
	}
	if got := evt.PayloadInt("ratio"); got != 1 {
		t.Errorf("PayloadInt(ratio) = %d", got)
	}
	if got := evt.PayloadString("missing"); got != "" {
		t.Errorf("PayloadString(missing) = %q, want empty", got)
	}
}

func TestType_IsValid(t *testing.T) {
	for _, typ := range []Type{TypeRequestCreated, TypeStageChanged, TypeRequestClosed} {
		if !typ.IsValid() {
			t.Errorf("%s should be valid", typ)
		}
	}
	if Type("request.vanished").IsValid() {
		t.Error("unknown type should be invalid")
	}
}
