package controllers

import (
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"

	"project/backend/models"
	"project/backend/store"
	"project/backend/utils"
)

// CatalogController exposes course CRUD for the admin surface.
type CatalogController struct {
	Courses store.CourseStore
}

func NewCatalogController(courses store.CourseStore) *CatalogController {
	return &CatalogController{Courses: courses}
}

func (cc *CatalogController) GetCourse(c *fiber.Ctx) error {
	course, err := cc.Courses.GetCourse(c.Params("id"))
	if err != nil {
		return serviceError(c, err)
	}
	return utils.Success(c, fiber.StatusOK, course)
}

func (cc *CatalogController) ListCourses(c *fiber.Ctx) error {
	courses, err := cc.Courses.ListCourses()
	if err != nil {
		return serviceError(c, err)
	}
	return utils.Success(c, fiber.StatusOK, courses)
}

func (cc *CatalogController) CreateCourse(c *fiber.Ctx) error {
	var course models.Course
	if err := c.BodyParser(&course); err != nil {
		return utils.BadRequest(c, "Cannot parse JSON")
	}
	if course.Title == "" {
		return utils.BadRequest(c, "Course title is required")
	}
	if course.ID == "" {
		course.ID = uuid.NewString()
	}
	if err := cc.Courses.SaveCourse(&course); err != nil {
		return serviceError(c, err)
	}
	return utils.Created(c, course)
}

func (cc *CatalogController) UpdateCourse(c *fiber.Ctx) error {
	if _, err := cc.Courses.GetCourse(c.Params("id")); err != nil {
		return serviceError(c, err)
	}
	var course models.Course
	if err := c.BodyParser(&course); err != nil {
		return utils.BadRequest(c, "Cannot parse JSON")
	}
	course.ID = c.Params("id")
	if err := cc.Courses.SaveCourse(&course); err != nil {
		return serviceError(c, err)
	}
	return utils.Success(c, fiber.StatusOK, course)
}

func (cc *CatalogController) DeleteCourse(c *fiber.Ctx) error {
	if err := cc.Courses.DeleteCourse(c.Params("id")); err != nil {
		return serviceError(c, err)
	}
	return utils.Success(c, fiber.StatusOK, fiber.Map{"deleted": c.Params("id")})
}
