package mctypes

import "testing"

func TestParseStatusRoundTrip(t *testing.T) {
	raw := `{"version":{"name":"1.21.8","protocol":773},"players":{"max":20,"online":3,"sample":[{"name":"Notch","id":"069a79f4-44e9-4726-a5be-fca90e38aaf5"}]},"description":"A Minecraft Server"}`

	status, err := ParseStatus(raw)
	if err != nil {
		t.Fatalf("ParseStatus: %v", err)
	}
	if status.Version.Protocol != 773 {
		t.Fatalf("protocol = %d, want 773", status.Version.Protocol)
	}
	if status.Players.Online != 3 || status.Players.Max != 20 {
		t.Fatalf("players = %+v", status.Players)
	}
	if len(status.Players.Sample) != 1 || status.Players.Sample[0].Name != "Notch" {
		t.Fatalf("sample = %+v", status.Players.Sample)
	}

	out, err := status.Encode()
	if err != nil {
		t.Fatalf("Encode: %v", err)
	}
	reparsed, err := ParseStatus(out)
	if err != nil {
		t.Fatalf("re-parse: %v", err)
	}
	if reparsed.Version.Name != "1.21.8" {
		t.Fatalf("round trip lost version name: %+v", reparsed)
	}
}

func TestParseStatusRejectsMalformedJSON(t *testing.T) {
	if _, err := ParseStatus("not json"); err == nil {
		t.Fatal("expected an error parsing malformed status JSON")
	}
}
