package controllers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/uniforum/uniforum/internal/app/models/dto"
	"github.com/uniforum/uniforum/internal/app/services"
	"github.com/uniforum/uniforum/internal/middleware"
)

// AdminController handles administrative operations
type AdminController struct {
	adminService services.AdminService
	forumService services.ForumService
}

// NewAdminController creates a new AdminController
func NewAdminController(adminService services.AdminService, forumService services.ForumService) *AdminController {
	return &AdminController{
		adminService: adminService,
		forumService: forumService,
	}
}

// GetUsers lists all user accounts
// @Summary List users
// @Tags admin
// @Produce json
// @Security BearerAuth
// @Success 200 {object} dto.APIResponse{data=[]models.User} "Users"
// @Failure 403 {object} dto.ErrorResponse "Admin role required"
// @Router /admin/users [get]
func (c *AdminController) GetUsers(ctx *gin.Context) {
	users, err := c.adminService.GetAllUsers(ctx)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, dto.APIResponse{Data: users, Timestamp: time.Now()})
}

// VerifyUser marks a pending account as verified
// @Summary Verify a user
// @Tags admin
// @Produce json
// @Security BearerAuth
// @Param id path int true "User ID"
// @Success 200 {object} dto.APIResponse{data=dto.SuccessResponse} "User verified"
// @Failure 404 {object} dto.ErrorResponse "User not found"
// @Router /admin/users/{id}/verify [put]
func (c *AdminController) VerifyUser(ctx *gin.Context) {
	userID, ok := pathID(ctx, "id")
	if !ok {
		return
	}
	if err := c.adminService.VerifyUser(ctx, userID); err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, dto.APIResponse{
		Data:      dto.SuccessResponse{Message: "User verified"},
		Timestamp: time.Now(),
	})
}

// UpdateUser updates a user's profile and university association
// @Summary Update a user
// @Tags admin
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "User ID"
// @Param request body dto.UpdateUserRequest true "User data"
// @Success 200 {object} dto.APIResponse{data=models.User} "Updated user"
// @Failure 400 {object} dto.ErrorResponse "Invalid request data"
// @Failure 404 {object} dto.ErrorResponse "User not found"
// @Router /admin/users/{id} [put]
func (c *AdminController) UpdateUser(ctx *gin.Context) {
	userID, ok := pathID(ctx, "id")
	if !ok {
		return
	}

	var req dto.UpdateUserRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		errorDetail := dto.NewErrorDetail(dto.ErrorCodeValidationFailed, "Invalid user data")
		errorDetail = errorDetail.WithDetails(err.Error())
		ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse(errorDetail))
		return
	}

	user, err := c.adminService.UpdateUser(ctx, userID, req)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, dto.APIResponse{Data: user, Timestamp: time.Now()})
}

// DeleteUser removes a user account
// @Summary Delete a user
// @Tags admin
// @Produce json
// @Security BearerAuth
// @Param id path int true "User ID"
// @Success 200 {object} dto.APIResponse{data=dto.SuccessResponse} "User deleted"
// @Failure 404 {object} dto.ErrorResponse "User not found"
// @Router /admin/users/{id} [delete]
func (c *AdminController) DeleteUser(ctx *gin.Context) {
	userID, ok := pathID(ctx, "id")
	if !ok {
		return
	}
	if err := c.adminService.DeleteUser(ctx, userID); err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, dto.APIResponse{
		Data:      dto.SuccessResponse{Message: "User deleted"},
		Timestamp: time.Now(),
	})
}

// GetProfessors lists professor accounts
// @Summary List professors
// @Tags admin
// @Produce json
// @Security BearerAuth
// @Success 200 {object} dto.APIResponse{data=[]models.User} "Professors"
// @Router /admin/professors [get]
func (c *AdminController) GetProfessors(ctx *gin.Context) {
	professors, err := c.adminService.GetProfessors(ctx)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, dto.APIResponse{Data: professors, Timestamp: time.Now()})
}

// GetGroups lists the study group names known to the registry
// @Summary List study groups
// @Tags admin
// @Produce json
// @Security BearerAuth
// @Success 200 {object} dto.APIResponse{data=[]string} "Group names"
// @Router /admin/groups [get]
func (c *AdminController) GetGroups(ctx *gin.Context) {
	groups, err := c.adminService.GetGroupNames(ctx)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, dto.APIResponse{Data: groups, Timestamp: time.Now()})
}

// CreateCourse creates a course and its main forum
// @Summary Create a course
// @Tags admin
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body dto.CreateCourseRequest true "Course data"
// @Success 201 {object} dto.APIResponse{data=models.Course} "Course created"
// @Failure 400 {object} dto.ErrorResponse "Invalid request data"
// @Failure 409 {object} dto.ErrorResponse "Course already exists"
// @Router /admin/courses [post]
func (c *AdminController) CreateCourse(ctx *gin.Context) {
	var req dto.CreateCourseRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		errorDetail := dto.NewErrorDetail(dto.ErrorCodeValidationFailed, "Invalid course data")
		errorDetail = errorDetail.WithDetails(err.Error())
		ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse(errorDetail))
		return
	}

	course, err := c.adminService.CreateCourse(ctx, req)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	ctx.JSON(http.StatusCreated, dto.APIResponse{Data: course, Timestamp: time.Now()})
}

// GetCourses lists all courses
// @Summary List courses
// @Tags admin
// @Produce json
// @Security BearerAuth
// @Success 200 {object} dto.APIResponse{data=[]models.Course} "Courses"
// @Router /admin/courses [get]
func (c *AdminController) GetCourses(ctx *gin.Context) {
	courses, err := c.adminService.GetAllCourses(ctx)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, dto.APIResponse{Data: courses, Timestamp: time.Now()})
}

// EnrollStudent enrolls a student in a course
// @Summary Enroll a student
// @Tags admin
// @Produce json
// @Security BearerAuth
// @Param id path int true "User ID"
// @Param courseId path int true "Course ID"
// @Success 200 {object} dto.APIResponse{data=dto.SuccessResponse} "Student enrolled"
// @Failure 400 {object} dto.ErrorResponse "User is not a student"
// @Failure 404 {object} dto.ErrorResponse "User or course not found"
// @Router /admin/users/{id}/courses/{courseId} [post]
func (c *AdminController) EnrollStudent(ctx *gin.Context) {
	userID, ok := pathID(ctx, "id")
	if !ok {
		return
	}
	courseID, ok := pathID(ctx, "courseId")
	if !ok {
		return
	}
	if err := c.adminService.EnrollStudent(ctx, userID, courseID); err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, dto.APIResponse{
		Data:      dto.SuccessResponse{Message: "Student enrolled"},
		Timestamp: time.Now(),
	})
}

// RemoveStudentFromCourse removes a student's enrollment
// @Summary Remove a student from a course
// @Tags admin
// @Produce json
// @Security BearerAuth
// @Param id path int true "User ID"
// @Param courseId path int true "Course ID"
// @Success 200 {object} dto.APIResponse{data=dto.SuccessResponse} "Enrollment removed"
// @Failure 404 {object} dto.ErrorResponse "Enrollment not found"
// @Router /admin/users/{id}/courses/{courseId} [delete]
func (c *AdminController) RemoveStudentFromCourse(ctx *gin.Context) {
	userID, ok := pathID(ctx, "id")
	if !ok {
		return
	}
	courseID, ok := pathID(ctx, "courseId")
	if !ok {
		return
	}
	if err := c.adminService.RemoveStudentFromCourse(ctx, userID, courseID); err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, dto.APIResponse{
		Data:      dto.SuccessResponse{Message: "Enrollment removed"},
		Timestamp: time.Now(),
	})
}

// MoveStudent moves a student to a different study group
// @Summary Move a student to a group
// @Description Updates the student's group and materializes the group's subforums across the student's courses
// @Tags admin
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "User ID"
// @Param request body dto.MoveStudentRequest true "Target group"
// @Success 200 {object} dto.APIResponse{data=dto.SuccessResponse} "Student moved"
// @Failure 400 {object} dto.ErrorResponse "User is not a student"
// @Failure 404 {object} dto.ErrorResponse "User not found"
// @Router /admin/users/{id}/group [put]
func (c *AdminController) MoveStudent(ctx *gin.Context) {
	userID, ok := pathID(ctx, "id")
	if !ok {
		return
	}

	var req dto.MoveStudentRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		errorDetail := dto.NewErrorDetail(dto.ErrorCodeValidationFailed, "Invalid group data")
		errorDetail = errorDetail.WithDetails(err.Error())
		ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse(errorDetail))
		return
	}

	if err := c.adminService.MoveStudentToGroup(ctx, userID, req.GroupName); err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, dto.APIResponse{
		Data:      dto.SuccessResponse{Message: "Student moved to " + req.GroupName},
		Timestamp: time.Now(),
	})
}

// GrantForumAccess gives a user explicit access to a forum
// @Summary Grant forum access
// @Tags admin
// @Produce json
// @Security BearerAuth
// @Param id path int true "Forum ID"
// @Param userId path int true "User ID"
// @Success 200 {object} dto.APIResponse{data=dto.SuccessResponse} "Access granted"
// @Failure 404 {object} dto.ErrorResponse "Forum or user not found"
// @Router /admin/forums/{id}/access/{userId} [post]
func (c *AdminController) GrantForumAccess(ctx *gin.Context) {
	forumID, ok := pathID(ctx, "id")
	if !ok {
		return
	}
	userID, ok := pathID(ctx, "userId")
	if !ok {
		return
	}
	if err := c.forumService.GrantAccess(ctx, forumID, userID); err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, dto.APIResponse{
		Data:      dto.SuccessResponse{Message: "Forum access granted"},
		Timestamp: time.Now(),
	})
}

// AssignProfessor assigns a professor as owner of a forum
// @Summary Assign a forum professor
// @Tags admin
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "Forum ID"
// @Param request body dto.AssignProfessorRequest true "Professor"
// @Success 200 {object} dto.APIResponse{data=dto.SuccessResponse} "Professor assigned"
// @Failure 400 {object} dto.ErrorResponse "User is not a professor"
// @Failure 404 {object} dto.ErrorResponse "Forum or user not found"
// @Router /admin/forums/{id}/professor [put]
func (c *AdminController) AssignProfessor(ctx *gin.Context) {
	forumID, ok := pathID(ctx, "id")
	if !ok {
		return
	}

	var req dto.AssignProfessorRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		errorDetail := dto.NewErrorDetail(dto.ErrorCodeValidationFailed, "Invalid professor data")
		errorDetail = errorDetail.WithDetails(err.Error())
		ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse(errorDetail))
		return
	}

	if err := c.forumService.AssignProfessor(ctx, forumID, req.ProfessorID); err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, dto.APIResponse{
		Data:      dto.SuccessResponse{Message: "Professor assigned"},
		Timestamp: time.Now(),
	})
}

// RemoveProfessor clears a forum's owning professor
// @Summary Remove a forum professor
// @Tags admin
// @Produce json
// @Security BearerAuth
// @Param id path int true "Forum ID"
// @Success 200 {object} dto.APIResponse{data=dto.SuccessResponse} "Professor removed"
// @Failure 404 {object} dto.ErrorResponse "Forum not found"
// @Router /admin/forums/{id}/professor [delete]
func (c *AdminController) RemoveProfessor(ctx *gin.Context) {
	forumID, ok := pathID(ctx, "id")
	if !ok {
		return
	}
	if err := c.forumService.RemoveProfessor(ctx, forumID); err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, dto.APIResponse{
		Data:      dto.SuccessResponse{Message: "Professor removed"},
		Timestamp: time.Now(),
	})
}

// InitializeForums materializes a main forum for every course
// @Summary Initialize course forums
// @Tags admin
// @Produce json
// @Security BearerAuth
// @Success 200 {object} dto.APIResponse{data=dto.SuccessResponse} "Forums initialized"
// @Router /admin/forums/initialize [post]
func (c *AdminController) InitializeForums(ctx *gin.Context) {
	if err := c.forumService.InitializeForums(ctx); err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, dto.APIResponse{
		Data:      dto.SuccessResponse{Message: "Forums initialized"},
		Timestamp: time.Now(),
	})
}

// SyncProfessors creates accounts for registry professors
// @Summary Sync professors from the registry
// @Tags admin
// @Produce json
// @Security BearerAuth
// @Success 200 {object} dto.APIResponse{data=dto.SuccessResponse} "Professors synchronized"
// @Router /admin/professors/sync [post]
func (c *AdminController) SyncProfessors(ctx *gin.Context) {
	if err := c.adminService.SyncProfessors(ctx); err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, dto.APIResponse{
		Data:      dto.SuccessResponse{Message: "Professors synchronized"},
		Timestamp: time.Now(),
	})
}
