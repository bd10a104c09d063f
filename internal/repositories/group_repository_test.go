package repositories

import (
	"errors"
	"testing"

	"github.com/google/uuid"
	"github.com/rusi-notes/backend/internal/models"
	"gorm.io/gorm"
)

func TestCreateGroupAddsCreatorAsAdmin(t *testing.T) {
	db := newTestDB(t)
	repo := NewPostgresGroupRepository(db)

	creator := createTestUser(t, db, "creator@example.com")
	group := &models.Group{Name: "Dosa Hunters", OwnerID: creator.ID, InviteCode: uuid.NewString()}
	if err := repo.CreateGroup(group, creator.ID); err != nil {
		t.Fatalf("CreateGroup: %v", err)
	}

	isMember, err := repo.IsMember(group.ID, creator.ID)
	if err != nil {
		t.Fatalf("IsMember: %v", err)
	}
	if !isMember {
		t.Error("creator should be a member of the new group")
	}

	var member models.GroupMember
	if err := db.Where("group_id = ? AND user_id = ?", group.ID, creator.ID).First(&member).Error; err != nil {
		t.Fatalf("load membership: %v", err)
	}
	if member.Role != models.GroupRoleAdmin {
		t.Errorf("creator role = %q, want %q", member.Role, models.GroupRoleAdmin)
	}
}

func TestJoinByInviteCodeAndDuplicateMembership(t *testing.T) {
	db := newTestDB(t)
	repo := NewPostgresGroupRepository(db)

	creator := createTestUser(t, db, "creator@example.com")
	joiner := createTestUser(t, db, "joiner@example.com")

	group := &models.Group{Name: "Biryani Circle", OwnerID: creator.ID, InviteCode: uuid.NewString()}
	if err := repo.CreateGroup(group, creator.ID); err != nil {
		t.Fatalf("CreateGroup: %v", err)
	}

	found, err := repo.GetGroupByInviteCode(group.InviteCode)
	if err != nil {
		t.Fatalf("GetGroupByInviteCode: %v", err)
	}
	if found.ID != group.ID {
		t.Fatalf("found group %d, want %d", found.ID, group.ID)
	}

	member := &models.GroupMember{GroupID: group.ID, UserID: joiner.ID, Role: models.GroupRoleMember}
	if err := repo.AddMember(member); err != nil {
		t.Fatalf("AddMember: %v", err)
	}

	dup := &models.GroupMember{GroupID: group.ID, UserID: joiner.ID, Role: models.GroupRoleMember}
	err = repo.AddMember(dup)
	if !errors.Is(err, gorm.ErrDuplicatedKey) {
		t.Errorf("duplicate membership error = %v, want gorm.ErrDuplicatedKey", err)
	}

	groups, err := repo.GetGroupsByUser(joiner.ID)
	if err != nil {
		t.Fatalf("GetGroupsByUser: %v", err)
	}
	if len(groups) != 1 || groups[0].ID != group.ID {
		t.Errorf("joiner's groups = %v, want just %d", groups, group.ID)
	}

	if _, err := repo.GetGroupByInviteCode(uuid.NewString()); !errors.Is(err, gorm.ErrRecordNotFound) {
		t.Errorf("unknown invite code error = %v, want gorm.ErrRecordNotFound", err)
	}
}
