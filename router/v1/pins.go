package v1

import (
	"errors"
	"io"
	"net/http"
	"strconv"

	vd "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/gofrs/uuid"
	"github.com/guregu/null"
	"github.com/labstack/echo/v4"

	"github.com/traPtitech/pinboard/model"
	"github.com/traPtitech/pinboard/repository"
	"github.com/traPtitech/pinboard/router/consts"
	"github.com/traPtitech/pinboard/router/extension/herror"
	"github.com/traPtitech/pinboard/service/imaging"
	"github.com/traPtitech/pinboard/service/media"
	"github.com/traPtitech/pinboard/utils/validator"
)

const createPinFailedMessage = "failed to create pin"

// GetPins GET /pins
func (h *Handlers) GetPins(c echo.Context) error {
	cursor := 0
	if s := c.QueryParam("cursor"); len(s) > 0 {
		v, err := strconv.Atoi(s)
		if err != nil || v < 0 {
			return herror.BadRequest("cursor must be a non-negative integer")
		}
		cursor = v
	}

	q := repository.PinsQuery{
		Search: c.QueryParam("search"),
		Page:   cursor,
		Limit:  repository.PinsPageSize,
	}
	if s := c.QueryParam("userId"); len(s) > 0 {
		id, err := uuid.FromString(s)
		if err != nil {
			return herror.BadRequest("invalid userId")
		}
		q.UserID = uuid.NullUUID{UUID: id, Valid: true}
	}
	if s := c.QueryParam("boardId"); len(s) > 0 {
		id, err := uuid.FromString(s)
		if err != nil {
			return herror.BadRequest("invalid boardId")
		}
		q.BoardID = uuid.NullUUID{UUID: id, Valid: true}
	}

	pins, err := h.Repo.GetPins(q)
	if err != nil {
		return herror.InternalServerError(err)
	}

	res := PinsPage{Pins: formatPins(pins)}
	if len(pins) == repository.PinsPageSize {
		next := cursor + 1
		res.NextCursor = &next
	}
	return c.JSON(http.StatusOK, res)
}

// GetPin GET /pins/:id
func (h *Handlers) GetPin(c echo.Context) error {
	return c.JSON(http.StatusOK, formatPin(getParamPin(c)))
}

// PostPinRequest POST /pins リクエストボディ(multipart/form-data)
type PostPinRequest struct {
	Title         string `form:"title"`
	Description   string `form:"description"`
	Link          string `form:"link"`
	Board         string `form:"board"`
	NewBoard      string `form:"newBoard"`
	Tags          string `form:"tags"`
	CanvasOptions string `form:"canvasOptions"`
	TextOptions   string `form:"textOptions"`
}

func (r PostPinRequest) Validate() error {
	return vd.ValidateStruct(&r,
		vd.Field(&r.Title, validator.PinTitleRuleRequired...),
		vd.Field(&r.Description, validator.PinDescriptionRule...),
		vd.Field(&r.Link, validator.PinLinkRule...),
		vd.Field(&r.Board, vd.When(len(r.Board) > 0, validator.NotNilUUID)),
		vd.Field(&r.NewBoard, validator.BoardTitleRule...),
		vd.Field(&r.Tags, validator.PinTagsRule...),
	)
}

// PostPin POST /pins
func (h *Handlers) PostPin(c echo.Context) error {
	me := getRequestUser(c)

	var req PostPinRequest
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}

	args := repository.CreatePinArgs{
		UserID:        me.ID,
		NewBoardTitle: req.NewBoard,
		Title:         req.Title,
		Description:   req.Description,
		Link:          null.NewString(req.Link, len(req.Link) > 0),
		Tags:          validator.SplitTags(req.Tags),
	}
	if len(req.NewBoard) == 0 && len(req.Board) > 0 {
		board, err := h.Repo.GetBoard(uuid.FromStringOrNil(req.Board))
		if err != nil {
			if errors.Is(err, repository.ErrNotFound) {
				return herror.BadRequest("the board does not exist")
			}
			return herror.InternalServerError(err)
		}
		if board.UserID != me.ID {
			return herror.Forbidden("you cannot pin to another user's board")
		}
		args.BoardID = uuid.NullUUID{UUID: board.ID, Valid: true}
	}

	fh, err := c.FormFile("media")
	if err != nil {
		return herror.BadRequest("media is required")
	}
	src, err := fh.Open()
	if err != nil {
		return herror.InternalServerError(err)
	}
	defer src.Close()

	meta, err := imaging.Metadata(src, h.Config.MaxPixels)
	if err != nil {
		return herror.InternalServerErrorWithCause(createPinFailedMessage, err)
	}
	canvas, err := imaging.ParseCanvasOptions(req.CanvasOptions)
	if err != nil {
		return herror.InternalServerErrorWithCause(createPinFailedMessage, err)
	}
	text, err := imaging.ParseTextOptions(req.TextOptions)
	if err != nil {
		return herror.InternalServerErrorWithCause(createPinFailedMessage, err)
	}
	if err := vd.Errors{
		"canvasOptions.backgroundColor": vd.Validate(canvas.BackgroundColor, validator.HexColorRule...),
		"textOptions.color":             vd.Validate(text.Color, validator.HexColorRule...),
	}.Filter(); err != nil {
		return herror.BadRequest(err)
	}
	t, err := imaging.ComputeTransformation(meta, canvas, text)
	if err != nil {
		return herror.InternalServerErrorWithCause(createPinFailedMessage, err)
	}
	if _, err := src.Seek(0, io.SeekStart); err != nil {
		return herror.InternalServerError(err)
	}

	uploaded, err := h.Uploader.Upload(c.Request().Context(), media.UploadRequest{
		Filename:       fh.Filename,
		ContentType:    fh.Header.Get(echo.HeaderContentType),
		Body:           src,
		Meta:           meta,
		Transformation: t,
	})
	if err != nil {
		return herror.InternalServerErrorWithCause(createPinFailedMessage, err)
	}
	args.Media = uploaded.FilePath
	args.Width = uploaded.Width
	args.Height = uploaded.Height

	pin, err := h.Repo.CreatePin(args)
	if err != nil {
		switch {
		case repository.IsArgError(err):
			return herror.BadRequest(err)
		case errors.Is(err, repository.ErrForbidden):
			return herror.Forbidden("you cannot pin to another user's board")
		default:
			return herror.InternalServerError(err)
		}
	}
	return c.JSON(http.StatusCreated, formatPin(pin))
}

// GetInteractionCheck GET /pins/interaction-check/:id
func (h *Handlers) GetInteractionCheck(c echo.Context) error {
	pinID, err := h.getExistingPinID(c, consts.ParamPinID)
	if err != nil {
		return err
	}

	state, err := h.Repo.GetInteractionState(pinID, getRequestUserID(c))
	if err != nil {
		return herror.InternalServerError(err)
	}
	return c.JSON(http.StatusOK, InteractionState{
		LikeCount: state.LikeCount,
		IsLiked:   state.IsLiked,
		IsSaved:   state.IsSaved,
	})
}

// PostInteractRequest POST /pins/interact/:id リクエストボディ
type PostInteractRequest struct {
	Type model.InteractionType `json:"type"`
}

func (r PostInteractRequest) Validate() error {
	return vd.ValidateStruct(&r,
		vd.Field(&r.Type, vd.Required, vd.In(model.InteractionLike, model.InteractionSave)),
	)
}

// PostInteract POST /pins/interact/:id
func (h *Handlers) PostInteract(c echo.Context) error {
	pinID, err := getUUIDParam(c, consts.ParamPinID)
	if err != nil {
		return err
	}

	var req PostInteractRequest
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}

	active, err := h.Repo.ToggleInteraction(req.Type, getRequestUserID(c), pinID)
	if err != nil {
		switch {
		case repository.IsArgError(err):
			return herror.BadRequest(err)
		case errors.Is(err, repository.ErrNotFound):
			return herror.NotFound()
		default:
			return herror.InternalServerError(err)
		}
	}
	return c.JSON(http.StatusOK, echo.Map{"type": req.Type, "active": active})
}

// getExistingPinID URLパラメータのピンIDを取得し、存在を確認します
func (h *Handlers) getExistingPinID(c echo.Context, name string) (uuid.UUID, error) {
	pinID, err := getUUIDParam(c, name)
	if err != nil {
		return uuid.Nil, err
	}
	ok, err := h.Repo.PinExists(pinID)
	if err != nil {
		return uuid.Nil, herror.InternalServerError(err)
	}
	if !ok {
		return uuid.Nil, herror.NotFound()
	}
	return pinID, nil
}
