package testfixtures

import "testing"

func TestIDGeneratorProducesSequentialIDs(t *testing.T) {
	t.Parallel()

	gen := NewIDGenerator("session")
	if first, second := gen.Next(), gen.Next(); first != "session-1" || second != "session-2" {
		t.Fatalf("unexpected identifiers: %q, %q", first, second)
	}
}

func TestIDGeneratorDefaultsPrefix(t *testing.T) {
	t.Parallel()

	gen := NewIDGenerator("")
	if next := gen.Next(); next != "id-1" {
		t.Fatalf("expected id-1, got %q", next)
	}
}

func TestFixturesAreDistinct(t *testing.T) {
	t.Parallel()

	a := NewSessionFixture()
	b := NewSessionFixture()
	if a.ID == b.ID {
		t.Fatalf("session fixtures share id %q", a.ID)
	}

	p := NewParticipantFixture()
	q := NewParticipantFixture()
	if p.ID == q.ID || p.Name == q.Name || p.ApplicantCode == q.ApplicantCode {
		t.Fatalf("participant fixtures share identity: %+v vs %+v", p, q)
	}
}
