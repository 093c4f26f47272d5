package services

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/uniforum/uniforum/internal/app/models"
)

var (
	professor = &models.User{ID: 10, FirstName: "Eva", LastName: "Meier", Role: models.RoleProfessor}
	admin     = &models.User{ID: 11, FirstName: "System", LastName: "Administrator", Role: models.RoleAdmin}
	alice     = &models.User{ID: 20, Nickname: "al1ce", Role: models.RoleStudent}
	bob       = &models.User{ID: 21, Nickname: "bob", Role: models.RoleStudent}
)

func studentPost(author *models.User) *models.Post {
	return &models.Post{ID: 100, AuthorID: author.ID, Title: "Exam dates?", Author: author}
}

func TestDispatchTargets_StudentCommenterNeverFires(t *testing.T) {
	targets := dispatchTargets(bob, studentPost(alice), nil)
	assert.Empty(t, targets)
}

func TestDispatchTargets_OfficialCommentOnStudentPost(t *testing.T) {
	targets := dispatchTargets(professor, studentPost(alice), nil)

	require.Len(t, targets, 1)
	assert.Equal(t, alice.ID, targets[0].RecipientID)
	assert.Equal(t, models.NotificationOfficialPostComment, targets[0].Type)
	assert.Contains(t, targets[0].Message, "Eva Meier")
	assert.Contains(t, targets[0].Message, "Exam dates?")
}

func TestDispatchTargets_AdminCountsAsOfficial(t *testing.T) {
	targets := dispatchTargets(admin, studentPost(alice), nil)

	require.Len(t, targets, 1)
	assert.Equal(t, models.NotificationOfficialPostComment, targets[0].Type)
}

func TestDispatchTargets_ReplyToOtherStudentFiresBoth(t *testing.T) {
	// Professor replies to bob's comment on alice's post: alice gets the
	// post notice, bob gets the reply notice.
	parent := &models.Comment{ID: 200, PostID: 100, AuthorID: bob.ID, Author: bob}
	targets := dispatchTargets(professor, studentPost(alice), parent)

	require.Len(t, targets, 2)
	assert.Equal(t, alice.ID, targets[0].RecipientID)
	assert.Equal(t, models.NotificationOfficialPostComment, targets[0].Type)
	assert.Equal(t, bob.ID, targets[1].RecipientID)
	assert.Equal(t, models.NotificationOfficialCommentReply, targets[1].Type)
}

func TestDispatchTargets_ReplyToPostAuthorOnlyFiresReplyNotice(t *testing.T) {
	// The reply notice covers the direct reply case, the post author must
	// not be notified twice.
	parent := &models.Comment{ID: 200, PostID: 100, AuthorID: alice.ID, Author: alice}
	targets := dispatchTargets(professor, studentPost(alice), parent)

	require.Len(t, targets, 1)
	assert.Equal(t, alice.ID, targets[0].RecipientID)
	assert.Equal(t, models.NotificationOfficialCommentReply, targets[0].Type)
}

func TestDispatchTargets_OfficialPostAuthorNotNotified(t *testing.T) {
	otherProfessor := &models.User{ID: 12, FirstName: "Jan", LastName: "Novak", Role: models.RoleProfessor}
	targets := dispatchTargets(professor, studentPost(otherProfessor), nil)
	assert.Empty(t, targets)
}

func TestDispatchTargets_CommenterOnOwnPost(t *testing.T) {
	post := &models.Post{ID: 100, AuthorID: professor.ID, Title: "Announcement", Author: professor}
	targets := dispatchTargets(professor, post, nil)
	assert.Empty(t, targets)
}

func TestDispatchTargets_ReplyToOfficialComment(t *testing.T) {
	otherProfessor := &models.User{ID: 12, FirstName: "Jan", LastName: "Novak", Role: models.RoleProfessor}
	parent := &models.Comment{ID: 200, PostID: 100, AuthorID: otherProfessor.ID, Author: otherProfessor}
	targets := dispatchTargets(professor, studentPost(alice), parent)

	// Only the post author is notified, officials never receive notices.
	require.Len(t, targets, 1)
	assert.Equal(t, alice.ID, targets[0].RecipientID)
}
