package services

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/uniforum/uniforum/internal/app/models"
	"github.com/uniforum/uniforum/internal/app/repositories"
	"github.com/uniforum/uniforum/internal/pkg/apperrors"
)

// Stubs embed the repository interfaces so only the methods a test path
// touches need an implementation.

type stubUserRepo struct {
	repositories.IUserRepository
	users map[int64]*models.User
}

func (s *stubUserRepo) GetByID(_ context.Context, id int64) (*models.User, error) {
	user, ok := s.users[id]
	if !ok {
		return nil, apperrors.ErrUserNotFound
	}
	return user, nil
}

type stubCourseRepo struct {
	repositories.ICourseRepository
	courses    map[int64]*models.Course
	enrolled   map[int64][]*models.Course
	enrollment map[[2]int64]bool
}

func (s *stubCourseRepo) GetByID(_ context.Context, id int64) (*models.Course, error) {
	course, ok := s.courses[id]
	if !ok {
		return nil, apperrors.ErrCourseNotFound
	}
	return course, nil
}

func (s *stubCourseRepo) GetAll(_ context.Context) ([]*models.Course, error) {
	all := make([]*models.Course, 0, len(s.courses))
	for _, course := range s.courses {
		all = append(all, course)
	}
	return all, nil
}

func (s *stubCourseRepo) GetEnrolledCourses(_ context.Context, userID int64) ([]*models.Course, error) {
	return s.enrolled[userID], nil
}

func (s *stubCourseRepo) IsEnrolled(_ context.Context, userID, courseID int64) (bool, error) {
	return s.enrollment[[2]int64{userID, courseID}], nil
}

type stubForumRepo struct {
	repositories.IForumRepository
	forums  map[int64]*models.Forum
	grants  map[[2]int64]bool
	created []*models.Forum
}

func (s *stubForumRepo) GetByID(_ context.Context, id int64) (*models.Forum, error) {
	forum, ok := s.forums[id]
	if !ok {
		return nil, apperrors.ErrForumNotFound
	}
	return forum, nil
}

func (s *stubForumRepo) GetAll(_ context.Context) ([]*models.Forum, error) {
	all := make([]*models.Forum, 0, len(s.forums))
	for _, forum := range s.forums {
		all = append(all, forum)
	}
	return all, nil
}

func (s *stubForumRepo) GetByProfessorID(_ context.Context, professorID int64) ([]*models.Forum, error) {
	var owned []*models.Forum
	for _, forum := range s.forums {
		if forum.ProfessorID != nil && *forum.ProfessorID == professorID {
			owned = append(owned, forum)
		}
	}
	return owned, nil
}

func (s *stubForumRepo) GetMainForumsForCourses(_ context.Context, courseIDs []int64) ([]*models.Forum, error) {
	return s.collect(courseIDs, func(f *models.Forum) bool {
		return f.Type == models.ForumMainCourse
	}), nil
}

func (s *stubForumRepo) GetGroupSubforumsForCourses(_ context.Context, courseIDs []int64, groupName string) ([]*models.Forum, error) {
	return s.collect(courseIDs, func(f *models.Forum) bool {
		return f.Type == models.ForumGroupSubforum && f.GroupName != nil && *f.GroupName == groupName
	}), nil
}

func (s *stubForumRepo) collect(courseIDs []int64, match func(*models.Forum) bool) []*models.Forum {
	var out []*models.Forum
	for _, id := range courseIDs {
		for _, forum := range s.forums {
			if forum.CourseID != nil && *forum.CourseID == id && match(forum) {
				out = append(out, forum)
			}
		}
	}
	return out
}

func (s *stubForumRepo) GetGrantedForums(_ context.Context, userID int64) ([]*models.Forum, error) {
	var granted []*models.Forum
	for key, ok := range s.grants {
		if ok && key[1] == userID {
			if forum, exists := s.forums[key[0]]; exists {
				granted = append(granted, forum)
			}
		}
	}
	return granted, nil
}

func (s *stubForumRepo) HasGrant(_ context.Context, forumID, userID int64) (bool, error) {
	return s.grants[[2]int64{forumID, userID}], nil
}

func (s *stubForumRepo) CreateIfMissing(_ context.Context, forum *models.Forum) (*models.Forum, error) {
	for _, existing := range s.forums {
		if existing.Type != forum.Type || existing.CourseID == nil || forum.CourseID == nil ||
			*existing.CourseID != *forum.CourseID {
			continue
		}
		if forum.Type == models.ForumMainCourse {
			return existing, nil
		}
		if existing.GroupName != nil && forum.GroupName != nil && *existing.GroupName == *forum.GroupName {
			return existing, nil
		}
	}
	forum.ID = int64(len(s.forums) + 1)
	s.forums[forum.ID] = forum
	s.created = append(s.created, forum)
	return forum, nil
}

func (s *stubForumRepo) SetProfessor(_ context.Context, forumID int64, professorID *int64) error {
	forum, ok := s.forums[forumID]
	if !ok {
		return apperrors.ErrForumNotFound
	}
	forum.ProfessorID = professorID
	return nil
}

func strPtr(s string) *string { return &s }

// newVisibilityFixture builds two courses with main forums, a subforum per
// group on course 1, and an unrelated professor-owned forum.
func newVisibilityFixture() (*stubForumRepo, *stubCourseRepo, *stubUserRepo) {
	groupA := "Group A"
	groupB := "Group B"
	professorID := int64(10)

	forumRepo := &stubForumRepo{
		forums: map[int64]*models.Forum{
			1: {ID: 1, CourseID: ptr(1), Type: models.ForumMainCourse},
			2: {ID: 2, CourseID: ptr(1), GroupName: &groupA, Type: models.ForumGroupSubforum},
			3: {ID: 3, CourseID: ptr(1), GroupName: &groupB, Type: models.ForumGroupSubforum},
			4: {ID: 4, CourseID: ptr(2), Type: models.ForumMainCourse, ProfessorID: &professorID},
		},
		grants: map[[2]int64]bool{},
	}
	courseRepo := &stubCourseRepo{
		courses: map[int64]*models.Course{
			1: {ID: 1, Name: "Calculus I", Year: 1, Semester: 1},
			2: {ID: 2, Name: "Linear Algebra", Year: 1, Semester: 2},
		},
		enrolled:   map[int64][]*models.Course{},
		enrollment: map[[2]int64]bool{},
	}
	userRepo := &stubUserRepo{
		users: map[int64]*models.User{
			1:  {ID: 1, Role: models.RoleAdmin},
			10: {ID: 10, Role: models.RoleProfessor},
			20: {ID: 20, Role: models.RoleStudent, GroupName: strPtr(groupA)},
			21: {ID: 21, Role: models.RoleStudent},
		},
	}
	return forumRepo, courseRepo, userRepo
}

func TestGetForumsForUser_StudentUnion(t *testing.T) {
	forumRepo, courseRepo, userRepo := newVisibilityFixture()
	courseRepo.enrolled[20] = []*models.Course{courseRepo.courses[1]}
	// Explicit grant into the other course's main forum.
	forumRepo.grants[[2]int64{4, 20}] = true

	service := NewForumService(forumRepo, courseRepo, userRepo)
	forums, err := service.GetForumsForUser(context.Background(), 20)
	require.NoError(t, err)

	ids := make([]int64, 0, len(forums))
	for _, f := range forums {
		ids = append(ids, f.ID)
	}
	// Main forum of course 1, Group A subforum, granted forum 4. Never the
	// Group B subforum.
	assert.ElementsMatch(t, []int64{1, 2, 4}, ids)
}

func TestGetForumsForUser_DedupesOverlap(t *testing.T) {
	forumRepo, courseRepo, userRepo := newVisibilityFixture()
	courseRepo.enrolled[20] = []*models.Course{courseRepo.courses[1]}
	// Grant a forum the student already sees through enrollment.
	forumRepo.grants[[2]int64{1, 20}] = true

	service := NewForumService(forumRepo, courseRepo, userRepo)
	forums, err := service.GetForumsForUser(context.Background(), 20)
	require.NoError(t, err)

	seen := map[int64]int{}
	for _, f := range forums {
		seen[f.ID]++
	}
	assert.Equal(t, 1, seen[1])
}

func TestGetForumsForUser_StudentWithoutEnrollments(t *testing.T) {
	forumRepo, courseRepo, userRepo := newVisibilityFixture()

	service := NewForumService(forumRepo, courseRepo, userRepo)
	forums, err := service.GetForumsForUser(context.Background(), 21)
	require.NoError(t, err)
	assert.Empty(t, forums)
}

func TestGetForumsForUser_AdminSeesAll(t *testing.T) {
	forumRepo, courseRepo, userRepo := newVisibilityFixture()

	service := NewForumService(forumRepo, courseRepo, userRepo)
	forums, err := service.GetForumsForUser(context.Background(), 1)
	require.NoError(t, err)
	assert.Len(t, forums, 4)
}

func TestGetForumsForUser_ProfessorSeesOwnedOnly(t *testing.T) {
	forumRepo, courseRepo, userRepo := newVisibilityFixture()

	service := NewForumService(forumRepo, courseRepo, userRepo)
	forums, err := service.GetForumsForUser(context.Background(), 10)
	require.NoError(t, err)
	require.Len(t, forums, 1)
	assert.Equal(t, int64(4), forums[0].ID)
}

func TestCanAccess_StudentRules(t *testing.T) {
	forumRepo, courseRepo, userRepo := newVisibilityFixture()
	courseRepo.enrollment[[2]int64{20, 1}] = true
	student := userRepo.users[20]

	service := NewForumService(forumRepo, courseRepo, userRepo)
	ctx := context.Background()

	// Enrolled main forum.
	ok, err := service.CanAccess(ctx, student, forumRepo.forums[1])
	require.NoError(t, err)
	assert.True(t, ok)

	// Matching group subforum.
	ok, err = service.CanAccess(ctx, student, forumRepo.forums[2])
	require.NoError(t, err)
	assert.True(t, ok)

	// Other group's subforum stays closed despite enrollment.
	ok, err = service.CanAccess(ctx, student, forumRepo.forums[3])
	require.NoError(t, err)
	assert.False(t, ok)

	// Not enrolled, no grant.
	ok, err = service.CanAccess(ctx, student, forumRepo.forums[4])
	require.NoError(t, err)
	assert.False(t, ok)

	// An explicit grant opens it.
	forumRepo.grants[[2]int64{4, 20}] = true
	ok, err = service.CanAccess(ctx, student, forumRepo.forums[4])
	require.NoError(t, err)
	assert.True(t, ok)
}

func TestCanAccess_ProfessorOwnershipOnly(t *testing.T) {
	forumRepo, courseRepo, userRepo := newVisibilityFixture()
	professor := userRepo.users[10]

	service := NewForumService(forumRepo, courseRepo, userRepo)
	ctx := context.Background()

	ok, err := service.CanAccess(ctx, professor, forumRepo.forums[4])
	require.NoError(t, err)
	assert.True(t, ok)

	ok, err = service.CanAccess(ctx, professor, forumRepo.forums[1])
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestEnsureGroupSubforum_Idempotent(t *testing.T) {
	forumRepo, courseRepo, userRepo := newVisibilityFixture()

	service := NewForumService(forumRepo, courseRepo, userRepo)
	ctx := context.Background()

	first, err := service.EnsureGroupSubforum(ctx, 2, "Group A")
	require.NoError(t, err)
	second, err := service.EnsureGroupSubforum(ctx, 2, "Group A")
	require.NoError(t, err)
	assert.Equal(t, first.ID, second.ID)
}

func TestEnsureGroupSubforum_EmptyGroupRejected(t *testing.T) {
	forumRepo, courseRepo, userRepo := newVisibilityFixture()

	service := NewForumService(forumRepo, courseRepo, userRepo)
	_, err := service.EnsureGroupSubforum(context.Background(), 1, "")
	assert.ErrorIs(t, err, apperrors.ErrValidationFailed)
}

func TestEnsureMainCourseForum_UnknownCourse(t *testing.T) {
	forumRepo, courseRepo, userRepo := newVisibilityFixture()

	service := NewForumService(forumRepo, courseRepo, userRepo)
	_, err := service.EnsureMainCourseForum(context.Background(), 99)
	assert.ErrorIs(t, err, apperrors.ErrCourseNotFound)
}

func TestAssignProfessor_RejectsNonProfessor(t *testing.T) {
	forumRepo, courseRepo, userRepo := newVisibilityFixture()

	service := NewForumService(forumRepo, courseRepo, userRepo)
	err := service.AssignProfessor(context.Background(), 1, 20)
	assert.ErrorIs(t, err, apperrors.ErrInvalidRoleOperation)
}

func TestAssignProfessor_SetsOwner(t *testing.T) {
	forumRepo, courseRepo, userRepo := newVisibilityFixture()

	service := NewForumService(forumRepo, courseRepo, userRepo)
	require.NoError(t, service.AssignProfessor(context.Background(), 1, 10))
	require.NotNil(t, forumRepo.forums[1].ProfessorID)
	assert.Equal(t, int64(10), *forumRepo.forums[1].ProfessorID)

	require.NoError(t, service.RemoveProfessor(context.Background(), 1))
	assert.Nil(t, forumRepo.forums[1].ProfessorID)
}
