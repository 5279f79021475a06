package devtools

import (
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gorilla/websocket"
	"github.com/prometheus/client_golang/prometheus"

	"github.com/vango-dev/hookrt/internal/demo"
	"github.com/vango-dev/hookrt/pkg/hooks"
)

var quiet = slog.New(slog.NewTextHandler(io.Discard, nil))

// setup returns an inspector with one rendered demo session.
func setup(t *testing.T, opts ...Option) (*Inspector, *demo.Session) {
	t.Helper()
	insp := New(append([]Option{WithLogger(quiet)}, opts...)...)
	in := hooks.NewInstance(
		hooks.WithName("counter"),
		hooks.WithLogger(quiet),
		hooks.WithObserver(insp.Observe),
	)
	s := demo.NewSession(in, demo.NewComponent(io.Discard))
	insp.Register(s)
	if _, err := s.Render(context.Background()); err != nil {
		t.Fatalf("Render() error = %v", err)
	}
	t.Cleanup(insp.Close)
	return insp, s
}

func getJSON(t *testing.T, url string, wantStatus int, v any) {
	t.Helper()
	resp, err := http.Get(url)
	if err != nil {
		t.Fatalf("GET %s: %v", url, err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != wantStatus {
		t.Fatalf("GET %s status = %d, want %d", url, resp.StatusCode, wantStatus)
	}
	if v != nil {
		if err := json.NewDecoder(resp.Body).Decode(v); err != nil {
			t.Fatalf("decode %s: %v", url, err)
		}
	}
}

func post(t *testing.T, url, body string, wantStatus int, v any) {
	t.Helper()
	resp, err := http.Post(url, "text/plain", strings.NewReader(body))
	if err != nil {
		t.Fatalf("POST %s: %v", url, err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != wantStatus {
		t.Fatalf("POST %s status = %d, want %d", url, resp.StatusCode, wantStatus)
	}
	if v != nil {
		if err := json.NewDecoder(resp.Body).Decode(v); err != nil {
			t.Fatalf("decode %s: %v", url, err)
		}
	}
}

func TestObserveRecordsCycles(t *testing.T) {
	insp, s := setup(t)

	if _, err := s.Dispatch(context.Background(), demo.ActionClick, ""); err != nil {
		t.Fatalf("Dispatch() error = %v", err)
	}

	got := insp.History().Recent(0)
	if len(got) != 2 {
		t.Fatalf("history has %d cycles, want 2", len(got))
	}
	if got[1].Number != 2 || got[1].Hooks != 4 || got[1].EffectsFired != 1 {
		t.Errorf("last cycle = %+v, want cycle 2 with 4 hooks and 1 effect", got[1])
	}
	if got[1].InstanceID != s.Instance().ID() {
		t.Errorf("InstanceID = %q, want %q", got[1].InstanceID, s.Instance().ID())
	}
}

func TestListInstances(t *testing.T) {
	insp, s := setup(t)
	srv := httptest.NewServer(insp.Router())
	defer srv.Close()

	var got []InstanceInfo
	getJSON(t, srv.URL+"/instances", http.StatusOK, &got)

	if len(got) != 1 {
		t.Fatalf("got %d instances, want 1", len(got))
	}
	want := InstanceInfo{ID: s.Instance().ID(), Name: "counter", Cycles: 1}
	if got[0] != want {
		t.Errorf("instance = %+v, want %+v", got[0], want)
	}
}

func TestGetInstance(t *testing.T) {
	insp, s := setup(t)
	srv := httptest.NewServer(insp.Router())
	defer srv.Close()

	var snap hooks.Snapshot
	getJSON(t, srv.URL+"/instances/"+s.Instance().ID(), http.StatusOK, &snap)

	if !snap.Locked {
		t.Error("Locked = false after a successful cycle")
	}
	if len(snap.Slots) != 4 {
		t.Fatalf("got %d slots, want 4", len(snap.Slots))
	}
	if snap.Slots[0].Kind != hooks.KindState || snap.Slots[0].Value != "0" {
		t.Errorf("slot 0 = %+v, want state 0", snap.Slots[0])
	}
	if snap.Slots[2].Kind != hooks.KindEffect {
		t.Errorf("slot 2 kind = %v, want Effect", snap.Slots[2].Kind)
	}
}

func TestGetInstanceNotFound(t *testing.T) {
	insp, _ := setup(t)
	srv := httptest.NewServer(insp.Router())
	defer srv.Close()

	var resp errorResponse
	getJSON(t, srv.URL+"/instances/missing", http.StatusNotFound, &resp)
	if resp.Code != "H121" {
		t.Errorf("code = %q, want H121", resp.Code)
	}
}

func TestPostAction(t *testing.T) {
	insp, s := setup(t)
	srv := httptest.NewServer(insp.Router())
	defer srv.Close()

	base := srv.URL + "/instances/" + s.Instance().ID() + "/actions/"

	var resp actionResponse
	post(t, base+"click", "", http.StatusOK, &resp)
	if resp.Instance.Cycles != 2 || resp.Instance.Slots[0].Value != "1" {
		t.Errorf("after click: cycles=%d count=%s, want 2 and 1",
			resp.Instance.Cycles, resp.Instance.Slots[0].Value)
	}

	post(t, base+"type", "hello", http.StatusOK, &resp)
	if got := resp.Instance.Slots[1].Value; got != `"hello"` {
		t.Errorf("after type: text = %s, want \"hello\"", got)
	}
}

func TestPostUnknownAction(t *testing.T) {
	insp, s := setup(t)
	srv := httptest.NewServer(insp.Router())
	defer srv.Close()

	var resp errorResponse
	post(t, srv.URL+"/instances/"+s.Instance().ID()+"/actions/jump", "", http.StatusBadRequest, &resp)
	if resp.Code != "H120" {
		t.Errorf("code = %q, want H120", resp.Code)
	}
	if resp.Suggestion == "" {
		t.Error("suggestion is empty")
	}
}

func TestPostActionNotFound(t *testing.T) {
	insp, _ := setup(t)
	srv := httptest.NewServer(insp.Router())
	defer srv.Close()

	post(t, srv.URL+"/instances/missing/actions/click", "", http.StatusNotFound, nil)
}

func TestGetCycles(t *testing.T) {
	insp, s := setup(t)
	for i := 0; i < 3; i++ {
		if _, err := s.Dispatch(context.Background(), demo.ActionClick, ""); err != nil {
			t.Fatalf("Dispatch() error = %v", err)
		}
	}
	srv := httptest.NewServer(insp.Router())
	defer srv.Close()

	var all []hooks.CycleReport
	getJSON(t, srv.URL+"/cycles", http.StatusOK, &all)
	if len(all) != 4 {
		t.Fatalf("got %d cycles, want 4", len(all))
	}

	var last []hooks.CycleReport
	getJSON(t, srv.URL+"/cycles?limit=1", http.StatusOK, &last)
	if len(last) != 1 || last[0].Number != 4 {
		t.Errorf("limit=1 returned %+v, want cycle 4", last)
	}

	getJSON(t, srv.URL+"/cycles?limit=x", http.StatusBadRequest, nil)
}

func TestHistoryOption(t *testing.T) {
	insp, s := setup(t, WithHistory(2))
	for i := 0; i < 3; i++ {
		if _, err := s.Dispatch(context.Background(), demo.ActionClick, ""); err != nil {
			t.Fatalf("Dispatch() error = %v", err)
		}
	}
	if got := insp.History().Len(); got != 2 {
		t.Errorf("history Len() = %d, want 2", got)
	}
}

func TestMetricsEndpoint(t *testing.T) {
	reg := prometheus.NewRegistry()
	sample := prometheus.NewCounter(prometheus.CounterOpts{
		Name: "devtools_sample_total",
		Help: "Probe counter",
	})
	reg.MustRegister(sample)
	sample.Inc()

	insp, _ := setup(t, WithGatherer(reg))
	srv := httptest.NewServer(insp.Router())
	defer srv.Close()

	resp, err := http.Get(srv.URL + "/metrics")
	if err != nil {
		t.Fatalf("GET /metrics: %v", err)
	}
	defer resp.Body.Close()
	body, _ := io.ReadAll(resp.Body)

	if resp.StatusCode != http.StatusOK {
		t.Fatalf("status = %d, want 200", resp.StatusCode)
	}
	if !strings.Contains(string(body), "devtools_sample_total 1") {
		t.Errorf("metrics body missing sample counter:\n%s", body)
	}
}

func TestFeedStreamsCycles(t *testing.T) {
	insp, s := setup(t)
	srv := httptest.NewServer(insp.Router())
	defer srv.Close()

	wsURL := "ws" + strings.TrimPrefix(srv.URL, "http") + "/ws"
	conn, _, err := websocket.DefaultDialer.Dial(wsURL, nil)
	if err != nil {
		t.Fatalf("Dial() error = %v", err)
	}
	defer conn.Close()

	deadline := time.Now().Add(2 * time.Second)
	for insp.Feed().ClientCount() != 1 {
		if time.Now().After(deadline) {
			t.Fatal("client was not registered")
		}
		time.Sleep(5 * time.Millisecond)
	}

	if err := insp.Act(context.Background(), s.Instance().ID(), demo.ActionClick, ""); err != nil {
		t.Fatalf("Act() error = %v", err)
	}

	conn.SetReadDeadline(time.Now().Add(2 * time.Second))
	var events []Event
	for len(events) < 2 {
		var ev Event
		if err := conn.ReadJSON(&ev); err != nil {
			t.Fatalf("ReadJSON() error = %v", err)
		}
		events = append(events, ev)
	}

	if events[0].Type != EventAction || events[0].Action != demo.ActionClick {
		t.Errorf("first event = %+v, want click action", events[0])
	}
	if events[1].Type != EventCycle || events[1].Cycle == nil || events[1].Cycle.Number != 2 {
		t.Errorf("second event = %+v, want cycle 2", events[1])
	}
}

func TestFeedPublishesActionErrors(t *testing.T) {
	insp, s := setup(t)
	srv := httptest.NewServer(insp.Router())
	defer srv.Close()

	wsURL := "ws" + strings.TrimPrefix(srv.URL, "http") + "/ws"
	conn, _, err := websocket.DefaultDialer.Dial(wsURL, nil)
	if err != nil {
		t.Fatalf("Dial() error = %v", err)
	}
	defer conn.Close()

	deadline := time.Now().Add(2 * time.Second)
	for insp.Feed().ClientCount() != 1 {
		if time.Now().After(deadline) {
			t.Fatal("client was not registered")
		}
		time.Sleep(5 * time.Millisecond)
	}

	if err := insp.Act(context.Background(), s.Instance().ID(), "jump", ""); err == nil {
		t.Fatal("Act() error = nil, want H120")
	}

	conn.SetReadDeadline(time.Now().Add(2 * time.Second))
	var ev Event
	for ev.Type != EventError {
		if err := conn.ReadJSON(&ev); err != nil {
			t.Fatalf("ReadJSON() error = %v", err)
		}
	}
	if !strings.Contains(ev.Error, "H120") {
		t.Errorf("error event = %q, want H120", ev.Error)
	}
}

func TestUnregister(t *testing.T) {
	insp, s := setup(t)
	insp.Unregister(s.Instance().ID())

	if _, err := insp.Target(s.Instance().ID()); hooks.ErrorCode(err) != "H121" {
		t.Errorf("Target() error = %v, want H121", err)
	}
	if got := insp.Instances(); len(got) != 0 {
		t.Errorf("Instances() = %+v, want none", got)
	}
}
