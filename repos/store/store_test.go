package store

import "testing"

func TestPairKeyCanonical(t *testing.T) {
	if PairKey("alice", "bob") != PairKey("bob", "alice") {
		t.Errorf("Pair key should not depend on argument order")
	}
	if PairKey("alice", "bob") != "alice_bob" {
		t.Errorf("Expected alice_bob, got %s", PairKey("alice", "bob"))
	}
}

func TestCheckLastOwner(t *testing.T) {
	cases := []struct {
		name        string
		currentRole string
		newRole     string
		owners      int
		wantErr     error
	}{
		{name: "demote sole owner", currentRole: RoleOwner, newRole: RoleAdmin, owners: 1, wantErr: ErrLastOwner},
		{name: "remove sole owner", currentRole: RoleOwner, newRole: "", owners: 1, wantErr: ErrLastOwner},
		{name: "demote one of two owners", currentRole: RoleOwner, newRole: RoleMember, owners: 2},
		{name: "remove one of two owners", currentRole: RoleOwner, newRole: "", owners: 2},
		{name: "owner keeps owner role", currentRole: RoleOwner, newRole: RoleOwner, owners: 1},
		{name: "admin leaves freely", currentRole: RoleAdmin, newRole: "", owners: 1},
		{name: "member role change", currentRole: RoleMember, newRole: RoleAdmin, owners: 1},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if got := checkLastOwner(tc.currentRole, tc.newRole, tc.owners); got != tc.wantErr {
				t.Errorf("Expected %v, got %v", tc.wantErr, got)
			}
		})
	}
}

func TestChunk(t *testing.T) {
	ids := []string{"a", "b", "c", "d", "e"}

	chunks := chunk(ids, 2)
	if len(chunks) != 3 {
		t.Fatalf("Expected 3 chunks, got %d", len(chunks))
	}
	if len(chunks[2]) != 1 || chunks[2][0] != "e" {
		t.Errorf("Unexpected last chunk: %v", chunks[2])
	}

	if got := chunk(nil, 2); got != nil {
		t.Errorf("Expected no chunks for empty input, got %v", got)
	}

	if got := chunk(ids, 30); len(got) != 1 || len(got[0]) != 5 {
		t.Errorf("Expected single chunk under the cap, got %v", got)
	}
}
