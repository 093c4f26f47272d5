package services

import (
	"fmt"

	"github.com/uniforum/uniforum/internal/app/models"
)

// dispatchTarget is one notification to be persisted and pushed as a
// consequence of a new comment.
type dispatchTarget struct {
	RecipientID int64
	Type        string
	Message     string
}

// dispatchTargets decides who gets notified about a new comment. Only
// comments by officials (professors and admins) generate notifications.
// Two independent checks apply and both can fire for the same comment:
//
// The post author is notified when they are a student, did not write the
// comment themselves, and the comment is not a direct reply to one of
// their own comments (the reply notice below already covers that case).
//
// The parent comment's author is notified when the comment is a reply and
// the parent was written by a student other than the commenter.
func dispatchTargets(commenter *models.User, post *models.Post, parent *models.Comment) []dispatchTarget {
	if !commenter.IsOfficial() {
		return nil
	}

	var targets []dispatchTarget

	postAuthorNotified := post.Author != nil &&
		post.Author.Role == models.RoleStudent &&
		post.AuthorID != commenter.ID &&
		(parent == nil || parent.AuthorID != post.AuthorID)
	if postAuthorNotified {
		targets = append(targets, dispatchTarget{
			RecipientID: post.AuthorID,
			Type:        models.NotificationOfficialPostComment,
			Message:     fmt.Sprintf("%s commented on your post \"%s\"", commenter.FullName(), post.Title),
		})
	}

	if parent != nil && parent.Author != nil &&
		parent.Author.Role == models.RoleStudent &&
		parent.AuthorID != commenter.ID {
		targets = append(targets, dispatchTarget{
			RecipientID: parent.AuthorID,
			Type:        models.NotificationOfficialCommentReply,
			Message:     fmt.Sprintf("%s replied to your comment on \"%s\"", commenter.FullName(), post.Title),
		})
	}

	return targets
}
