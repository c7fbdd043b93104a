package challenge

import (
	"reflect"
	"testing"
)

func TestMergeServicesLastWriterWins(t *testing.T) {
	existing := []ServiceRecord{
		{Port: 22, Proto: "tcp", State: "open", Service: "ssh", Product: "OpenSSH", Version: "8.9"},
		{Port: 80, Proto: "tcp", State: "open", Service: "http"},
	}
	incoming := []ServiceRecord{
		{Port: 80, Proto: "tcp", State: "open", Service: "http", Product: "nginx"},
		{Port: 445, Proto: "tcp", State: "open", Service: "smb"},
	}

	merged := MergeServices(existing, incoming)
	if len(merged) != 3 {
		t.Fatalf("expected 3 records, got %d", len(merged))
	}
	if merged[0].Key() != "22/tcp" {
		t.Fatalf("existing key moved: %s", merged[0].Key())
	}
	if merged[1].Product != "nginx" {
		t.Fatalf("80/tcp not overwritten: %+v", merged[1])
	}
	if merged[2].Key() != "445/tcp" {
		t.Fatalf("new key not appended: %s", merged[2].Key())
	}
}

func TestMergeServicesIdempotent(t *testing.T) {
	existing := []ServiceRecord{{Port: 22, Proto: "tcp", Service: "ssh"}}
	incoming := []ServiceRecord{
		{Port: 80, Proto: "tcp", Service: "http"},
		{Port: 22, Proto: "tcp", Service: "ssh", Product: "OpenSSH"},
	}

	once := MergeServices(existing, incoming)
	twice := MergeServices(once, incoming)
	if !reflect.DeepEqual(once, twice) {
		t.Fatalf("merge not idempotent:\nonce:  %+v\ntwice: %+v", once, twice)
	}
}

func TestMergeServicesDistinctProtocols(t *testing.T) {
	merged := MergeServices(
		[]ServiceRecord{{Port: 53, Proto: "tcp", Service: "domain"}},
		[]ServiceRecord{{Port: 53, Proto: "udp", Service: "domain"}},
	)
	if len(merged) != 2 {
		t.Fatalf("53/tcp and 53/udp should be distinct keys, got %d records", len(merged))
	}
}

func TestAppendUnique(t *testing.T) {
	list := []string{"ftp anon"}
	list = AppendUnique(list, "smb null session")
	list = AppendUnique(list, "ftp anon")
	if len(list) != 2 {
		t.Fatalf("expected 2 entries, got %v", list)
	}
	if list[0] != "ftp anon" || list[1] != "smb null session" {
		t.Fatalf("unexpected order: %v", list)
	}
}

func TestMarkTried(t *testing.T) {
	ctx := NewContext("machine")
	if !ctx.MarkTried("gobuster") {
		t.Fatalf("first mark should report added")
	}
	if ctx.MarkTried("gobuster") {
		t.Fatalf("second mark should report duplicate")
	}
	if len(ctx.Tried) != 1 {
		t.Fatalf("tried list grew on duplicate: %v", ctx.Tried)
	}
}

func TestServiceRecordTitle(t *testing.T) {
	rec := ServiceRecord{Port: 445, Proto: "tcp", Service: "smb"}
	if rec.Title() != "445/tcp smb" {
		t.Fatalf("unexpected title: %q", rec.Title())
	}
	unnamed := ServiceRecord{Port: 8080, Proto: "tcp"}
	if unnamed.Title() != "8080/tcp" {
		t.Fatalf("unexpected title for unnamed service: %q", unnamed.Title())
	}
}
