package repositories

import (
	"github.com/jackc/pgx/v5/pgxpool"
)

// Repositories holds all the repository instances
type Repositories struct {
	UserRepository         *UserRepository
	UniversityRepository   *UniversityRepository
	CourseRepository       *CourseRepository
	ForumRepository        *ForumRepository
	PostRepository         *PostRepository
	CommentRepository      *CommentRepository
	VoteRepository         *VoteRepository
	NotificationRepository *NotificationRepository
}

// NewRepositories initializes all repositories
func NewRepositories(db *pgxpool.Pool) *Repositories {
	return &Repositories{
		UserRepository:         NewUserRepository(db),
		UniversityRepository:   NewUniversityRepository(db),
		CourseRepository:       NewCourseRepository(db),
		ForumRepository:        NewForumRepository(db),
		PostRepository:         NewPostRepository(db),
		CommentRepository:      NewCommentRepository(db),
		VoteRepository:         NewVoteRepository(db),
		NotificationRepository: NewNotificationRepository(db),
	}
}
