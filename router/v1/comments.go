package v1

import (
	"errors"
	"net/http"

	vd "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/gofrs/uuid"
	"github.com/labstack/echo/v4"

	"github.com/traPtitech/pinboard/repository"
	"github.com/traPtitech/pinboard/router/consts"
	"github.com/traPtitech/pinboard/router/extension/herror"
	"github.com/traPtitech/pinboard/utils/validator"
)

// GetPinComments GET /comments/:postId
func (h *Handlers) GetPinComments(c echo.Context) error {
	pinID, err := h.getExistingPinID(c, consts.ParamPostID)
	if err != nil {
		return err
	}

	comments, err := h.Repo.GetPinComments(pinID)
	if err != nil {
		return herror.InternalServerError(err)
	}
	return c.JSON(http.StatusOK, formatComments(comments))
}

// PostCommentRequest POST /comments リクエストボディ
type PostCommentRequest struct {
	Description string    `json:"description"`
	Pin         uuid.UUID `json:"pin"`
}

func (r PostCommentRequest) Validate() error {
	return vd.ValidateStruct(&r,
		vd.Field(&r.Description, validator.CommentRuleRequired...),
		vd.Field(&r.Pin, validator.NotNilUUID),
	)
}

// PostComment POST /comments
func (h *Handlers) PostComment(c echo.Context) error {
	var req PostCommentRequest
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}

	comment, err := h.Repo.CreateComment(getRequestUserID(c), req.Pin, req.Description)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return herror.NotFound("the pin does not exist")
		}
		return herror.InternalServerError(err)
	}
	return c.JSON(http.StatusCreated, formatComment(comment))
}
