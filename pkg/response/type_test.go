package response_test

import (
	"testing"
	"time"

	"github.com/goccy/go-json"

	"assistant-kit/pkg/response"
)

func TestDateTimeJSON(t *testing.T) {
	loc := time.FixedZone("ICT", 7*3600)
	tm := time.Date(2024, 5, 1, 22, 30, 0, 125_000_000, loc)

	b, err := json.Marshal(response.DateTime(tm))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if string(b) != `"2024-05-01T15:30:00.125Z"` {
		t.Errorf("marshaled = %s", b)
	}

	var back response.DateTime
	if err := json.Unmarshal(b, &back); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !time.Time(back).Equal(tm) {
		t.Errorf("round trip = %v, want %v", time.Time(back), tm)
	}
}

func TestDateTimeJSON_Zero(t *testing.T) {
	b, err := json.Marshal(struct {
		At response.DateTime `json:"at"`
	}{})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if string(b) != `{"at":null}` {
		t.Errorf("marshaled = %s", b)
	}

	var d response.DateTime
	if err := json.Unmarshal([]byte("null"), &d); err != nil || !time.Time(d).IsZero() {
		t.Errorf("null should decode to zero, got %v %v", time.Time(d), err)
	}
	if err := json.Unmarshal([]byte(`"yesterday"`), &d); err == nil {
		t.Error("expected parse error")
	}
}
