package chat

import (
	"context"
	"errors"
	"path/filepath"
	"reflect"
	"testing"

	"github.com/enttlevo/mapai/internal/domain"
	"github.com/enttlevo/mapai/internal/geo"
	"github.com/enttlevo/mapai/internal/infra/sqlite"
)

// fakeAsker records calls and echoes a canned answer.
type fakeAsker struct {
	calls []askCall
	fail  bool
}

type askCall struct {
	regionID, sessionID, question string
}

func (f *fakeAsker) Ask(ctx context.Context, regionID, sessionID, question string) (string, error) {
	f.calls = append(f.calls, askCall{regionID, sessionID, question})
	if f.fail {
		return "", errors.New("upstream down")
	}
	return "answer to: " + question, nil
}

// fakeRegions maps canonical province names to region ids.
type fakeRegions map[string]string

func (f fakeRegions) FindByProvince(ctx context.Context, province string) (domain.Region, bool) {
	id, ok := f[province]
	if !ok {
		return domain.Region{}, false
	}
	return domain.Region{RegionID: id, ProvinceName: province}, true
}

func newTestService(t *testing.T) (*Service, *fakeAsker) {
	t.Helper()
	db, err := sqlite.Open(t.TempDir())
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	t.Cleanup(func() { _ = db.Close() })

	fc, err := geo.LoadDataset(filepath.Join("..", "..", "geo", "testdata", "provinces.geojson"))
	if err != nil {
		t.Fatalf("LoadDataset: %v", err)
	}
	idx := geo.BuildIndex(fc)

	asker := &fakeAsker{}
	regions := fakeRegions{
		"Nord-Kivu":     "r-goma",
		"Kongo-Central": "r-matadi",
		"Kasai-Central": "r-kananga",
	}
	svc := NewService(db, asker, regions, func() *geo.Index { return idx })
	return svc, asker
}

func TestSendMatchedFocusesAndForwards(t *testing.T) {
	svc, asker := newTestService(t)
	ctx := context.Background()

	sess, err := svc.StartSession()
	if err != nil {
		t.Fatalf("StartSession: %v", err)
	}

	reply, err := svc.Send(ctx, sess.ID, "I live in Goma, tell me more")
	if err != nil {
		t.Fatalf("Send: %v", err)
	}
	if reply.Detection != geo.DetectionMatched || reply.Province != "Nord-Kivu" {
		t.Errorf("reply = %+v, want matched Nord-Kivu", reply)
	}
	if reply.Answer == "" {
		t.Error("matched message should still be forwarded")
	}
	if len(asker.calls) != 1 || asker.calls[0].regionID != "r-goma" {
		t.Errorf("asker calls = %+v, want region r-goma", asker.calls)
	}

	// Focus is persisted.
	history, err := svc.History(sess.ID, 10)
	if err != nil || len(history) != 1 {
		t.Fatalf("History = %+v, %v", history, err)
	}
	if history[0].Province != "Nord-Kivu" {
		t.Errorf("exchange province = %q", history[0].Province)
	}
}

func TestSendNonePassesThroughWithCurrentFocus(t *testing.T) {
	svc, asker := newTestService(t)
	ctx := context.Background()

	sess, _ := svc.StartSession()
	if _, err := svc.Send(ctx, sess.ID, "tell me about bas congo"); err != nil {
		t.Fatalf("Send: %v", err)
	}

	reply, err := svc.Send(ctx, sess.ID, "and what is the population there?")
	if err != nil {
		t.Fatalf("Send: %v", err)
	}
	if reply.Detection != geo.DetectionNone {
		t.Errorf("detection = %v, want none", reply.Detection)
	}
	// The follow-up keeps the region focus from the first message.
	if reply.Province != "Kongo-Central" {
		t.Errorf("province = %q, want Kongo-Central", reply.Province)
	}
	if asker.calls[1].regionID != "r-matadi" {
		t.Errorf("follow-up region = %q, want r-matadi", asker.calls[1].regionID)
	}
}

func TestSendAmbiguousPausesAndChooseResolves(t *testing.T) {
	svc, asker := newTestService(t)
	ctx := context.Background()

	sess, _ := svc.StartSession()
	reply, err := svc.Send(ctx, sess.ID, "kasai")
	if err != nil {
		t.Fatalf("Send: %v", err)
	}
	if reply.Detection != geo.DetectionAmbiguous {
		t.Fatalf("reply = %+v, want ambiguous", reply)
	}
	want := []string{"Kasai", "Kasai-Central", "Kasai-Oriental"}
	if !reflect.DeepEqual(reply.Options, want) {
		t.Errorf("options = %v, want %v", reply.Options, want)
	}
	// Nothing was forwarded or persisted.
	if len(asker.calls) != 0 {
		t.Errorf("ambiguous message was forwarded: %+v", asker.calls)
	}
	if history, _ := svc.History(sess.ID, 10); len(history) != 0 {
		t.Errorf("ambiguous message was persisted: %+v", history)
	}

	// A choice outside the offered set is rejected.
	if _, err := svc.Choose(ctx, sess.ID, "Kinshasa"); !errors.Is(err, domain.ErrInvalidChoice) {
		t.Errorf("Choose(Kinshasa) err = %v, want ErrInvalidChoice", err)
	}

	// Choosing is a direct state transition; casing goes through Normalize.
	got, err := svc.Choose(ctx, sess.ID, "kasai-central")
	if err != nil {
		t.Fatalf("Choose: %v", err)
	}
	if got.Province != "Kasai-Central" || got.RegionID != "r-kananga" {
		t.Errorf("session after choice = %+v", got)
	}

	// The pending set is consumed.
	if _, err := svc.Choose(ctx, sess.ID, "Kasai"); !errors.Is(err, domain.ErrNoPendingChoice) {
		t.Errorf("second Choose err = %v, want ErrNoPendingChoice", err)
	}
}

func TestChooseWithoutPending(t *testing.T) {
	svc, _ := newTestService(t)
	sess, _ := svc.StartSession()
	if _, err := svc.Choose(context.Background(), sess.ID, "Kasai"); !errors.Is(err, domain.ErrNoPendingChoice) {
		t.Errorf("Choose err = %v, want ErrNoPendingChoice", err)
	}
}

func TestSendCreatesFrontendMintedSession(t *testing.T) {
	svc, _ := newTestService(t)
	// The SPA keeps its own uuid in local storage; first Send must create it.
	reply, err := svc.Send(context.Background(), "spa-uuid-1", "hello there")
	if err != nil {
		t.Fatalf("Send: %v", err)
	}
	if reply.SessionID != "spa-uuid-1" {
		t.Errorf("session id = %q", reply.SessionID)
	}
	if history, _ := svc.History("spa-uuid-1", 10); len(history) != 1 {
		t.Errorf("history = %+v", history)
	}
}

func TestSendAssistantFailure(t *testing.T) {
	svc, asker := newTestService(t)
	asker.fail = true

	sess, _ := svc.StartSession()
	if _, err := svc.Send(context.Background(), sess.ID, "hello"); err == nil {
		t.Error("Send should surface assistant failure")
	}
	// Failed exchanges are not persisted.
	if history, _ := svc.History(sess.ID, 10); len(history) != 0 {
		t.Errorf("failed exchange persisted: %+v", history)
	}
}
