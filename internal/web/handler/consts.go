package handler

const (
	// BaseLayout is the layout every page is rendered into.
	BaseLayout = "layouts/base"

	// RootPath is the root path of a blueprint.
	RootPath = "/"

	// LocalsUser is the fiber.Locals key of the logged in *models.User.
	LocalsUser = "user"
)
