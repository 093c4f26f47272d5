package services

import (
	"github.com/uniforum/uniforum/internal/app/repositories"
	"github.com/uniforum/uniforum/internal/pkg/auth"
	"github.com/uniforum/uniforum/internal/pkg/email"
)

// Services holds all the service instances
type Services struct {
	AuthService         AuthService
	ForumService        ForumService
	PostService         PostService
	CommentService      CommentService
	VoteService         VoteService
	NotificationService NotificationService
	AdminService        AdminService
}

// NewServices wires all services against the repositories and shared
// infrastructure.
func NewServices(repos *repositories.Repositories, jwtService *auth.JWTService, emailService email.EmailService, pusher Pusher) *Services {
	forumService := NewForumService(repos.ForumRepository, repos.CourseRepository, repos.UserRepository)
	notificationService := NewNotificationService(repos.NotificationRepository, pusher)

	return &Services{
		AuthService: NewAuthService(repos.UserRepository, repos.UniversityRepository,
			repos.CourseRepository, forumService, jwtService, emailService),
		ForumService: forumService,
		PostService: NewPostService(repos.PostRepository, repos.CommentRepository,
			repos.ForumRepository, repos.UserRepository, forumService),
		CommentService: NewCommentService(repos.CommentRepository, repos.PostRepository,
			repos.ForumRepository, repos.UserRepository, forumService, notificationService),
		VoteService: NewVoteService(repos.VoteRepository, repos.PostRepository,
			repos.CommentRepository, repos.ForumRepository, repos.UserRepository, forumService),
		NotificationService: notificationService,
		AdminService: NewAdminService(repos.UserRepository, repos.UniversityRepository,
			repos.CourseRepository, forumService),
	}
}
