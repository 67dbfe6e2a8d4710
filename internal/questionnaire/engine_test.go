package questionnaire

import (
	"context"
	"encoding/json"
	"errors"
	"reflect"
	"testing"
)

// fakeStore implements StateStore over a plain field.
type fakeStore struct {
	state  *State
	writes int
}

func (f *fakeStore) Read() (*State, error) {
	if f.state == nil {
		return nil, nil
	}
	// Hand out a deep copy: the real store round-trips through JSON, so
	// callers never share memory with it.
	raw, err := json.Marshal(f.state)
	if err != nil {
		return nil, err
	}
	var cp State
	if err := json.Unmarshal(raw, &cp); err != nil {
		return nil, err
	}
	return &cp, nil
}

func (f *fakeStore) Write(questions []Question, version string, info *StartupInfo) error {
	f.writes++
	f.state = &State{Questions: questions, Version: version, StartupInfo: info}
	return nil
}

func (f *fakeStore) Clear() error {
	f.state = nil
	return nil
}

const testCatalog = header +
	"1;Market;Q1?;a;b;c;d;e\n" +
	"2;Market;Q2?;a;b;c;d;e\n" +
	"3;Team;Q3?;a;b;c;d;e\n"

type staticCatalog string

func (s staticCatalog) FetchCSV(context.Context) (string, error) {
	return string(s), nil
}

func testConfig() Config {
	return Config{
		Parser:        DefaultParserConfig(),
		CategoryOrder: []string{"Market", "Team"},
	}
}

func newTestEngine(catalog string) (*Engine, *fakeStore) {
	st := &fakeStore{}
	return NewEngine(st, staticCatalog(catalog), testConfig(), NopReporter{}), st
}

func TestEnsureLoaded_FirstRun(t *testing.T) {
	e, st := newTestEngine(testCatalog)
	if err := e.EnsureLoaded(context.Background()); err != nil {
		t.Fatalf("EnsureLoaded: %v", err)
	}
	if st.state == nil {
		t.Fatal("no state persisted")
	}
	if st.state.Version != InitialVersion {
		t.Errorf("version = %q, want %q", st.state.Version, InitialVersion)
	}
	if len(st.state.Questions) != 3 {
		t.Errorf("persisted %d questions, want 3", len(st.state.Questions))
	}
}

func TestEnsureLoaded_DoesNotOverwrite(t *testing.T) {
	e, st := newTestEngine(testCatalog)
	ctx := context.Background()
	if err := e.EnsureLoaded(ctx); err != nil {
		t.Fatalf("EnsureLoaded: %v", err)
	}
	if err := e.SaveProgress(ctx, 1, 4); err != nil {
		t.Fatalf("SaveProgress: %v", err)
	}
	if err := e.EnsureLoaded(ctx); err != nil {
		t.Fatalf("EnsureLoaded again: %v", err)
	}
	q := st.state.Question(1)
	if q.SelectedScore == nil || *q.SelectedScore != 4 {
		t.Error("second EnsureLoaded clobbered recorded progress")
	}
}

func TestSaveProgress_Validation(t *testing.T) {
	e, _ := newTestEngine(testCatalog)
	ctx := context.Background()
	if err := e.EnsureLoaded(ctx); err != nil {
		t.Fatalf("EnsureLoaded: %v", err)
	}

	if err := e.SaveProgress(ctx, 1, 6); !errors.Is(err, ErrInvalidArgument) {
		t.Errorf("score 6: err = %v, want ErrInvalidArgument", err)
	}
	if err := e.SaveProgress(ctx, 1, 0); !errors.Is(err, ErrInvalidArgument) {
		t.Errorf("score 0: err = %v, want ErrInvalidArgument", err)
	}
	if err := e.SaveProgress(ctx, -1, 3); !errors.Is(err, ErrInvalidArgument) {
		t.Errorf("id -1: err = %v, want ErrInvalidArgument", err)
	}
	if err := e.SaveProgress(ctx, 999, 3); !errors.Is(err, ErrNotFound) {
		t.Errorf("id 999: err = %v, want ErrNotFound", err)
	}
}

func TestSaveProgress_NoState(t *testing.T) {
	e, _ := newTestEngine(testCatalog)
	if err := e.SaveProgress(context.Background(), 1, 3); !errors.Is(err, ErrNotFound) {
		t.Errorf("err = %v, want ErrNotFound", err)
	}
}

func TestSaveProgress_KeepsVersionAndInfo(t *testing.T) {
	e, st := newTestEngine(testCatalog)
	ctx := context.Background()
	if err := e.EnsureLoaded(ctx); err != nil {
		t.Fatalf("EnsureLoaded: %v", err)
	}
	info := StartupInfo{Industry: "fintech", ProductCategory: "b2b saas", TargetCustomers: "smb"}
	if err := e.SetStartupInfo(ctx, info); err != nil {
		t.Fatalf("SetStartupInfo: %v", err)
	}

	if err := e.SaveProgress(ctx, 2, 3); err != nil {
		t.Fatalf("SaveProgress: %v", err)
	}
	if st.state.Version != InitialVersion {
		t.Errorf("progress save bumped version to %q", st.state.Version)
	}
	if st.state.StartupInfo == nil || *st.state.StartupInfo != info {
		t.Errorf("progress save lost startup info: %+v", st.state.StartupInfo)
	}
}

func TestExportImport_RoundTrip(t *testing.T) {
	e, st := newTestEngine(testCatalog)
	ctx := context.Background()
	if err := e.EnsureLoaded(ctx); err != nil {
		t.Fatalf("EnsureLoaded: %v", err)
	}
	if err := e.SaveProgress(ctx, 1, 4); err != nil {
		t.Fatalf("SaveProgress: %v", err)
	}
	before := st.state

	payload, err := e.ExportProgress(ctx)
	if err != nil {
		t.Fatalf("ExportProgress: %v", err)
	}
	if err := e.Reset(ctx); err != nil {
		t.Fatalf("Reset: %v", err)
	}
	if err := e.ImportProgress(ctx, payload); err != nil {
		t.Fatalf("ImportProgress: %v", err)
	}

	if !reflect.DeepEqual(st.state, before) {
		t.Errorf("round trip mismatch:\n got %+v\nwant %+v", st.state, before)
	}
}

func TestExportProgress_AbsentState(t *testing.T) {
	e, _ := newTestEngine(testCatalog)
	payload, err := e.ExportProgress(context.Background())
	if err != nil {
		t.Fatalf("ExportProgress: %v", err)
	}
	if payload != "{}" {
		t.Errorf("payload = %q, want empty-object marker", payload)
	}
}

func TestImportProgress_RejectsMalformed(t *testing.T) {
	e, _ := newTestEngine(testCatalog)
	ctx := context.Background()

	cases := []string{
		"not json",
		"{}",
		`{"questions": [], "version": ""}`,
		`{"version": "1.0"}`,
		`{"questions": []}`,
	}
	for _, payload := range cases {
		if err := e.ImportProgress(ctx, payload); !errors.Is(err, ErrInvalidPayload) {
			t.Errorf("ImportProgress(%q) err = %v, want ErrInvalidPayload", payload, err)
		}
	}
}

func TestImportProgress_Overwrites(t *testing.T) {
	e, st := newTestEngine(testCatalog)
	ctx := context.Background()
	if err := e.EnsureLoaded(ctx); err != nil {
		t.Fatalf("EnsureLoaded: %v", err)
	}

	payload := `{"questions":[{"id":9,"category":"Other","question":"Q?","options":["a","b","c","d","e"],"selectedScore":2}],"version":"3.1","startupInfo":{"industry":"health","productCategory":"app","targetCustomers":"clinics"}}`
	if err := e.ImportProgress(ctx, payload); err != nil {
		t.Fatalf("ImportProgress: %v", err)
	}

	if len(st.state.Questions) != 1 || st.state.Questions[0].ID != 9 {
		t.Errorf("import did not fully replace questions: %+v", st.state.Questions)
	}
	if st.state.Version != "3.1" {
		t.Errorf("version = %q, want 3.1", st.state.Version)
	}
	if st.state.StartupInfo == nil || st.state.StartupInfo.Industry != "health" {
		t.Errorf("startup info not imported: %+v", st.state.StartupInfo)
	}
}

func TestRefresh_PreservesScoresByID(t *testing.T) {
	e, st := newTestEngine(testCatalog)
	ctx := context.Background()
	if err := e.EnsureLoaded(ctx); err != nil {
		t.Fatalf("EnsureLoaded: %v", err)
	}
	if err := e.SaveProgress(ctx, 3, 4); err != nil {
		t.Fatalf("SaveProgress: %v", err)
	}
	info := StartupInfo{Industry: "dev tools"}
	if err := e.SetStartupInfo(ctx, info); err != nil {
		t.Fatalf("SetStartupInfo: %v", err)
	}

	// New catalog: id 2 removed, id 3 kept, id 4 added.
	updated := header +
		"1;Market;Q1 reworded?;a;b;c;d;e\n" +
		"3;Team;Q3?;a;b;c;d;e\n" +
		"4;Team;Q4?;a;b;c;d;e\n"
	refreshed := NewEngine(st, staticCatalog(updated), testConfig(), NopReporter{})
	if err := refreshed.Refresh(ctx); err != nil {
		t.Fatalf("Refresh: %v", err)
	}

	if len(st.state.Questions) != 3 {
		t.Fatalf("refreshed to %d questions, want 3", len(st.state.Questions))
	}
	if st.state.Question(2) != nil {
		t.Error("removed question 2 survived refresh")
	}
	q3 := st.state.Question(3)
	if q3.SelectedScore == nil || *q3.SelectedScore != 4 {
		t.Error("refresh lost the score for id 3")
	}
	if st.state.Question(4).SelectedScore != nil {
		t.Error("new question 4 should start unanswered")
	}
	if st.state.Version != "1.1" {
		t.Errorf("version = %q, want 1.1", st.state.Version)
	}
	if st.state.StartupInfo == nil || st.state.StartupInfo.Industry != "dev tools" {
		t.Error("refresh lost startup info")
	}
}

func TestRefresh_NoStoredStateInitializes(t *testing.T) {
	e, st := newTestEngine(testCatalog)
	if err := e.Refresh(context.Background()); err != nil {
		t.Fatalf("Refresh: %v", err)
	}
	if st.state == nil || st.state.Version != InitialVersion {
		t.Errorf("state = %+v, want fresh record at %q", st.state, InitialVersion)
	}
}

func TestQueries_FallBackWithoutStore(t *testing.T) {
	// A store that never persists anything (the no-op medium): every query
	// sees a fresh catalog load.
	e := NewEngine(noopStore{}, staticCatalog(testCatalog), testConfig(), NopReporter{})
	ctx := context.Background()

	qs, err := e.Questions(ctx)
	if err != nil {
		t.Fatalf("Questions: %v", err)
	}
	if len(qs) != 3 {
		t.Errorf("got %d questions, want 3", len(qs))
	}

	q, err := e.Question(ctx, 2)
	if err != nil {
		t.Fatalf("Question: %v", err)
	}
	if q.ID != 2 {
		t.Errorf("Question(2).ID = %d", q.ID)
	}
}

type noopStore struct{}

func (noopStore) Read() (*State, error)                             { return nil, nil }
func (noopStore) Write([]Question, string, *StartupInfo) error      { return nil }
func (noopStore) Clear() error                                      { return nil }

func TestBumpVersion(t *testing.T) {
	cases := []struct{ in, want string }{
		{"1.0", "1.1"},
		{"1.9", "1.10"},
		{"2.3", "2.4"},
		{"7", "8"},
		{"garbage", "1.0"},
	}
	for _, c := range cases {
		if got := bumpVersion(c.in); got != c.want {
			t.Errorf("bumpVersion(%q) = %q, want %q", c.in, got, c.want)
		}
	}
}
