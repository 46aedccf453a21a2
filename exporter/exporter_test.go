package exporter

import (
	"context"
	"errors"
	"fmt"
	"reflect"
	"testing"

	"yogabeats/playlist"
)

type addCall struct {
	playlistID string
	ids        []string
}

type stubService struct {
	userErr   error
	createErr error
	failBatch int // 1-based batch number to fail; 0 never fails

	created  []string
	public   []bool
	addCalls []addCall
}

func (s *stubService) CurrentUserID(ctx context.Context) (string, error) {
	if s.userErr != nil {
		return "", s.userErr
	}
	return "instructor42", nil
}

func (s *stubService) CreatePlaylist(ctx context.Context, ownerID, name, description string, public bool) (CreatedPlaylist, error) {
	if s.createErr != nil {
		return CreatedPlaylist{}, s.createErr
	}
	id := fmt.Sprintf("pl%d", len(s.created)+1)
	s.created = append(s.created, ownerID+"/"+name+"/"+description)
	s.public = append(s.public, public)
	return CreatedPlaylist{ID: id, URL: "https://open.spotify.com/playlist/" + id}, nil
}

func (s *stubService) AddItems(ctx context.Context, playlistID string, ids []string) error {
	s.addCalls = append(s.addCalls, addCall{playlistID: playlistID, ids: ids})
	if s.failBatch == len(s.addCalls) {
		return errors.New("spotify: 500")
	}
	return nil
}

type stubConnector struct {
	service *stubService
	err     error
	tokens  []string
}

func (c *stubConnector) Connect(ctx context.Context, token string) (Service, error) {
	c.tokens = append(c.tokens, token)
	if c.err != nil {
		return nil, c.err
	}
	return c.service, nil
}

func makeIDs(n int) []string {
	ids := make([]string, n)
	for i := range ids {
		ids[i] = fmt.Sprintf("id%03d", i)
	}
	return ids
}

func TestExportBatches250(t *testing.T) {
	service := &stubService{}
	exporter := New(&stubConnector{service: service})
	ids := makeIDs(250)

	result, err := exporter.Export(context.Background(), Request{Name: "Sculpt", Description: "desc", ExternalIDs: ids}, "token")
	if err != nil {
		t.Fatalf("Export() error = %v", err)
	}

	if len(service.addCalls) != 3 {
		t.Fatalf("add calls = %d; want 3", len(service.addCalls))
	}
	sizes := []int{len(service.addCalls[0].ids), len(service.addCalls[1].ids), len(service.addCalls[2].ids)}
	if !reflect.DeepEqual(sizes, []int{100, 100, 50}) {
		t.Errorf("batch sizes = %v; want [100 100 50]", sizes)
	}

	var sent []string
	for _, call := range service.addCalls {
		if call.playlistID != "pl1" {
			t.Errorf("batch sent to %s; want pl1", call.playlistID)
		}
		sent = append(sent, call.ids...)
	}
	if !reflect.DeepEqual(sent, ids) {
		t.Error("ids not sent in input order")
	}

	if result.PlaylistID != "pl1" || result.TrackCount != 250 || result.URL == "" {
		t.Errorf("Export() = %+v", result)
	}
	if service.public[0] {
		t.Error("playlist should be private")
	}
	if service.created[0] != "instructor42/Sculpt/desc" {
		t.Errorf("created = %v", service.created)
	}
}

func TestExportEmptyIDs(t *testing.T) {
	service := &stubService{}
	result, err := New(&stubConnector{service: service}).Export(context.Background(), Request{Name: "Empty"}, "token")
	if err != nil {
		t.Fatalf("Export() error = %v", err)
	}
	if len(service.addCalls) != 0 {
		t.Errorf("add calls = %d; want 0", len(service.addCalls))
	}
	if len(service.created) != 1 || result.TrackCount != 0 {
		t.Errorf("expected one empty playlist, got %+v", result)
	}
}

func TestExportDuplicatesKept(t *testing.T) {
	service := &stubService{}
	ids := []string{"a", "b", "a"}
	if _, err := New(&stubConnector{service: service}).Export(context.Background(), Request{Name: "Dups", ExternalIDs: ids}, "t"); err != nil {
		t.Fatalf("Export() error = %v", err)
	}
	if !reflect.DeepEqual(service.addCalls[0].ids, ids) {
		t.Errorf("ids = %v; want %v", service.addCalls[0].ids, ids)
	}
}

func TestExportNotIdempotent(t *testing.T) {
	service := &stubService{}
	exporter := New(&stubConnector{service: service})
	request := Request{Name: "Twice", ExternalIDs: []string{"a"}}

	first, _ := exporter.Export(context.Background(), request, "t")
	second, _ := exporter.Export(context.Background(), request, "t")
	if first.PlaylistID == second.PlaylistID {
		t.Error("repeated exports should create distinct playlists")
	}
}

func TestExportFailures(t *testing.T) {
	tests := []struct {
		name      string
		connector *stubConnector
		wantAdds  int
	}{
		{"connect", &stubConnector{err: errors.New("bad token")}, 0},
		{"current user", &stubConnector{service: &stubService{userErr: errors.New("401")}}, 0},
		{"create", &stubConnector{service: &stubService{createErr: errors.New("403")}}, 0},
		{"second batch aborts", &stubConnector{service: &stubService{failBatch: 2}}, 2},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := New(tt.connector).Export(context.Background(), Request{Name: "x", ExternalIDs: makeIDs(250)}, "t")
			if !playlist.IsKind(err, playlist.ExportFailed) {
				t.Fatalf("error = %v; want ExportFailed", err)
			}
			if tt.connector.service != nil && len(tt.connector.service.addCalls) != tt.wantAdds {
				t.Errorf("add calls = %d; want %d", len(tt.connector.service.addCalls), tt.wantAdds)
			}
		})
	}
}

func TestExportRequiresName(t *testing.T) {
	connector := &stubConnector{service: &stubService{}}
	_, err := New(connector).Export(context.Background(), Request{Name: "  "}, "t")
	if !playlist.IsKind(err, playlist.ValidationError) {
		t.Fatalf("error = %v; want ValidationError", err)
	}
	if len(connector.tokens) != 0 {
		t.Error("no calls expected for invalid request")
	}
}

func TestBatches(t *testing.T) {
	tests := []struct {
		n    int
		want []int
	}{
		{0, nil},
		{1, []int{1}},
		{100, []int{100}},
		{101, []int{100, 1}},
		{250, []int{100, 100, 50}},
	}
	for _, tt := range tests {
		var got []int
		for _, batch := range Batches(makeIDs(tt.n), MaxItemsPerRequest) {
			got = append(got, len(batch))
		}
		if !reflect.DeepEqual(got, tt.want) {
			t.Errorf("Batches(%d) sizes = %v; want %v", tt.n, got, tt.want)
		}
	}
}
