package services

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/uniforum/uniforum/internal/app/models"
	"github.com/uniforum/uniforum/internal/app/models/dto"
	"github.com/uniforum/uniforum/internal/app/repositories"
	"github.com/uniforum/uniforum/internal/pkg/apperrors"
	"github.com/uniforum/uniforum/internal/pkg/auth"
)

type stubAuthUserRepo struct {
	repositories.IUserRepository
	byEmail map[string]*models.User
	created []*models.User
}

func (s *stubAuthUserRepo) GetByEmail(_ context.Context, email string) (*models.User, error) {
	user, ok := s.byEmail[email]
	if !ok {
		return nil, apperrors.ErrUserNotFound
	}
	return user, nil
}

func (s *stubAuthUserRepo) EmailExists(_ context.Context, email string) (bool, error) {
	_, ok := s.byEmail[email]
	return ok, nil
}

func (s *stubAuthUserRepo) NicknameExists(_ context.Context, nickname string) (bool, error) {
	for _, user := range s.byEmail {
		if user.Nickname == nickname {
			return true, nil
		}
	}
	return false, nil
}

func (s *stubAuthUserRepo) Create(_ context.Context, user *models.User) (int64, error) {
	user.ID = int64(len(s.byEmail) + 1)
	s.byEmail[user.Email] = user
	s.created = append(s.created, user)
	return user.ID, nil
}

func (s *stubAuthUserRepo) Update(_ context.Context, user *models.User) error {
	s.byEmail[user.Email] = user
	return nil
}

type stubRegistryRepo struct {
	repositories.IUniversityRepository
	students map[string]*models.UniversityStudent
}

func (s *stubRegistryRepo) GetStudentByEmail(_ context.Context, email string) (*models.UniversityStudent, error) {
	record, ok := s.students[email]
	if !ok {
		return nil, apperrors.ErrResourceNotFound
	}
	return record, nil
}

type stubMailer struct {
	verificationTo []string
	welcomeTo      []string
}

func (s *stubMailer) SendVerificationEmail(toEmail, _ string) error {
	s.verificationTo = append(s.verificationTo, toEmail)
	return nil
}

func (s *stubMailer) SendWelcomeEmail(toEmail, _ string) error {
	s.welcomeTo = append(s.welcomeTo, toEmail)
	return nil
}

func (s *stubCourseRepo) Enroll(_ context.Context, userID, courseID int64) error {
	s.enrollment[[2]int64{userID, courseID}] = true
	return nil
}

func (s *stubCourseRepo) GetByYearSemester(_ context.Context, year, semester int) ([]*models.Course, error) {
	var matched []*models.Course
	for _, course := range s.courses {
		if course.Year == year && course.Semester == semester {
			matched = append(matched, course)
		}
	}
	return matched, nil
}

type authFixture struct {
	service    AuthService
	userRepo   *stubAuthUserRepo
	registry   *stubRegistryRepo
	courseRepo *stubCourseRepo
	forumRepo  *stubForumRepo
	mailer     *stubMailer
}

func newAuthFixture(t *testing.T) *authFixture {
	t.Helper()

	forumRepo, courseRepo, fixtureUserRepo := newVisibilityFixture()
	_ = fixtureUserRepo

	userRepo := &stubAuthUserRepo{byEmail: map[string]*models.User{}}
	registry := &stubRegistryRepo{students: map[string]*models.UniversityStudent{}}
	mailer := &stubMailer{}
	jwtService := auth.NewJWTService(auth.JWTConfig{
		SecretKey:      "test-secret",
		AccessTokenExp: time.Hour,
		TokenIssuer:    "test",
	})
	forumService := NewForumService(forumRepo, courseRepo, userRepo)

	return &authFixture{
		service:    NewAuthService(userRepo, registry, courseRepo, forumService, jwtService, mailer),
		userRepo:   userRepo,
		registry:   registry,
		courseRepo: courseRepo,
		forumRepo:  forumRepo,
		mailer:     mailer,
	}
}

func (f *authFixture) addUser(t *testing.T, email, password string, verified bool) *models.User {
	t.Helper()
	hashed, err := auth.HashPassword(password)
	require.NoError(t, err)

	user := &models.User{
		ID:        int64(len(f.userRepo.byEmail) + 1),
		Email:     email,
		Password:  hashed,
		FirstName: "Alice",
		LastName:  "Smith",
		Nickname:  "al1ce",
		Role:      models.RoleStudent,
		Verified:  verified,
	}
	f.userRepo.byEmail[email] = user
	return user
}

func TestLogin_Success(t *testing.T) {
	f := newAuthFixture(t)
	f.addUser(t, "alice@uni.edu", "Secret123!", true)

	resp, err := f.service.Login(context.Background(), dto.LoginRequest{
		Email:    "alice@uni.edu",
		Password: "Secret123!",
	})
	require.NoError(t, err)
	assert.NotEmpty(t, resp.Token)
	assert.Equal(t, "alice@uni.edu", resp.Email)
	assert.Equal(t, "al1ce", resp.Nickname)
	assert.Equal(t, "STUDENT", resp.Role)
	assert.Positive(t, resp.ExpiresIn)
}

func TestLogin_WrongPassword(t *testing.T) {
	f := newAuthFixture(t)
	f.addUser(t, "alice@uni.edu", "Secret123!", true)

	_, err := f.service.Login(context.Background(), dto.LoginRequest{
		Email:    "alice@uni.edu",
		Password: "wrong",
	})
	assert.ErrorIs(t, err, apperrors.ErrInvalidCredentials)
}

func TestLogin_UnknownEmail(t *testing.T) {
	f := newAuthFixture(t)

	_, err := f.service.Login(context.Background(), dto.LoginRequest{
		Email:    "nobody@uni.edu",
		Password: "Secret123!",
	})
	// Unknown accounts and bad passwords are indistinguishable to callers.
	assert.ErrorIs(t, err, apperrors.ErrInvalidCredentials)
}

func TestLogin_UnverifiedAccountRejected(t *testing.T) {
	f := newAuthFixture(t)
	f.addUser(t, "alice@uni.edu", "Secret123!", false)

	_, err := f.service.Login(context.Background(), dto.LoginRequest{
		Email:    "alice@uni.edu",
		Password: "Secret123!",
	})
	assert.ErrorIs(t, err, apperrors.ErrAccountNotVerified)
}

func TestLogin_RegistryMatchVerifiesPendingStudent(t *testing.T) {
	f := newAuthFixture(t)
	f.addUser(t, "alice@uni.edu", "Secret123!", false)
	f.registry.students["alice@uni.edu"] = &models.UniversityStudent{
		Email: "alice@uni.edu", Year: 1, Semester: 1, GroupName: "Group A",
	}

	resp, err := f.service.Login(context.Background(), dto.LoginRequest{
		Email:    "alice@uni.edu",
		Password: "Secret123!",
	})
	require.NoError(t, err)
	require.NotNil(t, resp.GroupName)
	assert.Equal(t, "Group A", *resp.GroupName)
	assert.True(t, f.userRepo.byEmail["alice@uni.edu"].Verified)
}

func TestRegister_PasswordMismatch(t *testing.T) {
	f := newAuthFixture(t)

	_, err := f.service.Register(context.Background(), dto.RegisterRequest{
		FirstName:       "Alice",
		LastName:        "Smith",
		Email:           "alice@uni.edu",
		Nickname:        "al1ce",
		Password:        "Secret123!",
		ConfirmPassword: "Different123!",
	})
	assert.ErrorIs(t, err, apperrors.ErrPasswordMismatch)
}

func TestRegister_DuplicateEmail(t *testing.T) {
	f := newAuthFixture(t)
	f.addUser(t, "alice@uni.edu", "Secret123!", true)

	_, err := f.service.Register(context.Background(), dto.RegisterRequest{
		FirstName:       "Alice",
		LastName:        "Smith",
		Email:           "alice@uni.edu",
		Nickname:        "other",
		Password:        "Secret123!",
		ConfirmPassword: "Secret123!",
	})
	assert.ErrorIs(t, err, apperrors.ErrEmailAlreadyExists)
}

func TestRegister_UnknownEmailStaysUnverified(t *testing.T) {
	f := newAuthFixture(t)

	user, err := f.service.Register(context.Background(), dto.RegisterRequest{
		FirstName:       "Dora",
		LastName:        "Klein",
		Email:           "dora@elsewhere.org",
		Nickname:        "dora",
		Password:        "Secret123!",
		ConfirmPassword: "Secret123!",
	})
	require.NoError(t, err)
	assert.False(t, user.Verified)
	assert.Equal(t, []string{"dora@elsewhere.org"}, f.mailer.verificationTo)
}

func TestRegister_RegistryMatchLinksCourses(t *testing.T) {
	f := newAuthFixture(t)
	f.registry.students["alice@uni.edu"] = &models.UniversityStudent{
		Email: "alice@uni.edu", Year: 1, Semester: 1, GroupName: "Group A",
	}

	user, err := f.service.Register(context.Background(), dto.RegisterRequest{
		FirstName:       "Alice",
		LastName:        "Smith",
		Email:           "alice@uni.edu",
		Nickname:        "al1ce",
		Password:        "Secret123!",
		ConfirmPassword: "Secret123!",
	})
	require.NoError(t, err)
	assert.True(t, user.Verified)
	require.NotNil(t, user.GroupName)
	assert.Equal(t, "Group A", *user.GroupName)

	// Course 1 is the fixture's year 1 / semester 1 course.
	assert.True(t, f.courseRepo.enrollment[[2]int64{user.ID, 1}])
	assert.Equal(t, []string{"alice@uni.edu"}, f.mailer.welcomeTo)
}
