package controller

import (
	"fmt"
	"strings"

	"keep-notes-be/internal/dto"
	"keep-notes-be/internal/pkg/apperror"
	"keep-notes-be/internal/pkg/serverutils"
	"keep-notes-be/internal/service"

	"github.com/gofiber/fiber/v2"
)

type INoteController interface {
	RegisterRoutes(r fiber.Router)
	List(ctx *fiber.Ctx) error
	Create(ctx *fiber.Ctx) error
	Show(ctx *fiber.Ctx) error
	Update(ctx *fiber.Ctx) error
	Delete(ctx *fiber.Ctx) error
	ToggleArchive(ctx *fiber.Ctx) error
	TogglePin(ctx *fiber.Ctx) error
	ToggleTrash(ctx *fiber.Ctx) error
	EmptyTrash(ctx *fiber.Ctx) error
	CleanupTrash(ctx *fiber.Ctx) error
}

type noteController struct {
	noteService service.INoteService
	auth        fiber.Handler
	maintenance fiber.Handler
}

func NewNoteController(noteService service.INoteService, auth fiber.Handler, maintenance fiber.Handler) INoteController {
	return &noteController{
		noteService: noteService,
		auth:        auth,
		maintenance: maintenance,
	}
}

// RegisterRoutes mounts /notes. The fixed paths go before /:id, and
// cleanup-trash is guarded by the maintenance key instead of a user token.
func (c *noteController) RegisterRoutes(r fiber.Router) {
	h := r.Group("/notes")
	h.Delete("/cleanup-trash", c.maintenance, c.CleanupTrash)
	h.Delete("/empty-trash", c.auth, c.EmptyTrash)
	h.Get("", c.auth, c.List)
	h.Post("", c.auth, c.Create)
	h.Get("/:id", c.auth, c.Show)
	h.Put("/:id", c.auth, c.Update)
	h.Delete("/:id", c.auth, c.Delete)
	h.Patch("/:id/archive", c.auth, c.ToggleArchive)
	h.Patch("/:id/pin", c.auth, c.TogglePin)
	h.Patch("/:id/trash", c.auth, c.ToggleTrash)
}

func queryFlag(ctx *fiber.Ctx, key string) bool {
	return strings.EqualFold(ctx.Query(key), "true")
}

func (c *noteController) List(ctx *fiber.Ctx) error {
	userId, err := currentUserId(ctx)
	if err != nil {
		return err
	}

	req := dto.ListNotesRequest{
		Archived: queryFlag(ctx, "archived"),
		Trashed:  queryFlag(ctx, "trashed"),
	}

	res, err := c.noteService.List(ctx.UserContext(), userId, &req)
	if err != nil {
		return err
	}

	return ctx.JSON(serverutils.SuccessResponse("Success list notes", res))
}

func (c *noteController) Create(ctx *fiber.Ctx) error {
	userId, err := currentUserId(ctx)
	if err != nil {
		return err
	}

	var req dto.CreateNoteRequest
	present, err := decodeBody(ctx, &req)
	if err != nil {
		return err
	}
	if !present {
		return apperror.Validation("No data provided")
	}
	if err := serverutils.ValidateRequest(req); err != nil {
		return err
	}

	res, err := c.noteService.Create(ctx.UserContext(), userId, &req)
	if err != nil {
		return err
	}

	return ctx.Status(fiber.StatusCreated).JSON(serverutils.CreatedResponse("Success create note", res))
}

func (c *noteController) Show(ctx *fiber.Ctx) error {
	userId, err := currentUserId(ctx)
	if err != nil {
		return err
	}
	id, err := noteIdParam(ctx)
	if err != nil {
		return err
	}

	res, err := c.noteService.Show(ctx.UserContext(), userId, id)
	if err != nil {
		return err
	}

	return ctx.JSON(serverutils.SuccessResponse("Success show note", res))
}

func (c *noteController) Update(ctx *fiber.Ctx) error {
	userId, err := currentUserId(ctx)
	if err != nil {
		return err
	}
	id, err := noteIdParam(ctx)
	if err != nil {
		return err
	}

	var req dto.UpdateNoteRequest
	if _, err := decodeBody(ctx, &req); err != nil {
		return err
	}
	if err := serverutils.ValidateRequest(req); err != nil {
		return err
	}
	req.Id = id

	res, err := c.noteService.Update(ctx.UserContext(), userId, &req)
	if err != nil {
		return err
	}

	return ctx.JSON(serverutils.SuccessResponse("Success update note", res))
}

func (c *noteController) Delete(ctx *fiber.Ctx) error {
	userId, err := currentUserId(ctx)
	if err != nil {
		return err
	}
	id, err := noteIdParam(ctx)
	if err != nil {
		return err
	}

	if err := c.noteService.Delete(ctx.UserContext(), userId, id); err != nil {
		return err
	}

	return ctx.JSON(serverutils.SuccessResponse[any]("Note moved to trash", nil))
}

func (c *noteController) ToggleArchive(ctx *fiber.Ctx) error {
	userId, err := currentUserId(ctx)
	if err != nil {
		return err
	}
	id, err := noteIdParam(ctx)
	if err != nil {
		return err
	}

	res, err := c.noteService.ToggleArchive(ctx.UserContext(), userId, id)
	if err != nil {
		return err
	}

	return ctx.JSON(serverutils.SuccessResponse("Success toggle archive", res))
}

func (c *noteController) TogglePin(ctx *fiber.Ctx) error {
	userId, err := currentUserId(ctx)
	if err != nil {
		return err
	}
	id, err := noteIdParam(ctx)
	if err != nil {
		return err
	}

	res, err := c.noteService.TogglePin(ctx.UserContext(), userId, id)
	if err != nil {
		return err
	}

	return ctx.JSON(serverutils.SuccessResponse("Success toggle pin", res))
}

func (c *noteController) ToggleTrash(ctx *fiber.Ctx) error {
	userId, err := currentUserId(ctx)
	if err != nil {
		return err
	}
	id, err := noteIdParam(ctx)
	if err != nil {
		return err
	}

	res, err := c.noteService.ToggleTrash(ctx.UserContext(), userId, id)
	if err != nil {
		return err
	}

	return ctx.JSON(serverutils.SuccessResponse("Success toggle trash", res))
}

func (c *noteController) EmptyTrash(ctx *fiber.Ctx) error {
	userId, err := currentUserId(ctx)
	if err != nil {
		return err
	}

	res, err := c.noteService.EmptyTrash(ctx.UserContext(), userId)
	if err != nil {
		return err
	}

	message := "Trash emptied successfully"
	if res.AlreadyEmpty {
		message = "Trash is already empty"
	}
	return ctx.JSON(serverutils.SuccessResponse(message, res))
}

func (c *noteController) CleanupTrash(ctx *fiber.Ctx) error {
	res, err := c.noteService.CleanupTrash(ctx.UserContext())
	if err != nil {
		return err
	}

	var message string
	switch {
	case res.Skipped:
		message = "Trash cleanup already in progress"
	case res.Removed == 0:
		message = "No old trashed notes to clean up"
	default:
		message = fmt.Sprintf("Cleaned up %d old trashed notes successfully", res.Removed)
	}
	return ctx.JSON(serverutils.SuccessResponse(message, res))
}
