package v1

import (
	"errors"
	"net/http"

	vd "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/go-ozzo/ozzo-validation/v4/is"
	"github.com/labstack/echo/v4"
	"go.uber.org/zap"

	"github.com/traPtitech/pinboard/model"
	"github.com/traPtitech/pinboard/repository"
	"github.com/traPtitech/pinboard/router/extension/herror"
	"github.com/traPtitech/pinboard/utils/validator"
)

// loginFailedMessage 存在しないユーザーとパスワード誤りで共通のメッセージ
const loginFailedMessage = "invalid email/username or password"

// PostRegisterRequest POST /users/auth/register リクエストボディ
type PostRegisterRequest struct {
	Username    string `json:"username"`
	DisplayName string `json:"displayName"`
	Email       string `json:"email"`
	Password    string `json:"password"`
}

func (r PostRegisterRequest) Validate() error {
	return vd.ValidateStruct(&r,
		vd.Field(&r.Username, validator.UserNameRuleRequired...),
		vd.Field(&r.DisplayName, append([]vd.Rule{vd.Required}, validator.DisplayNameRule...)...),
		vd.Field(&r.Email, append([]vd.Rule{vd.Required}, validator.EmailRule...)...),
		vd.Field(&r.Password, validator.PasswordRuleRequired...),
	)
}

// PostRegister POST /users/auth/register
func (h *Handlers) PostRegister(c echo.Context) error {
	var req PostRegisterRequest
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}

	// アバター生成の失敗で登録は失敗させない
	img, err := h.Avatar.Generate(c.Request().Context(), req.Username)
	if err != nil {
		h.Logger.Warn("failed to generate avatar", zap.String("username", req.Username), zap.Error(err))
		img = ""
	}

	user, err := h.Repo.CreateUser(repository.CreateUserArgs{
		Username:    req.Username,
		DisplayName: req.DisplayName,
		Email:       req.Email,
		Password:    req.Password,
		Img:         img,
	})
	if err != nil {
		if img != "" {
			if err := h.Avatar.Delete(c.Request().Context(), img); err != nil {
				h.Logger.Warn("failed to delete unused avatar", zap.String("path", img), zap.Error(err))
			}
		}
		if errors.Is(err, repository.ErrAlreadyExists) {
			return herror.Conflict("username or email is already in use")
		}
		return herror.InternalServerError(err)
	}

	if _, err := h.SessStore.IssueSession(c, user.ID); err != nil {
		return herror.InternalServerError(err)
	}
	return c.JSON(http.StatusCreated, formatMe(user))
}

// PostLoginRequest POST /users/auth/login リクエストボディ
type PostLoginRequest struct {
	Email    string `json:"email"`
	Username string `json:"username"`
	Password string `json:"password"`
}

func (r PostLoginRequest) Validate() error {
	return vd.ValidateStruct(&r,
		vd.Field(&r.Email, vd.When(len(r.Username) == 0, vd.Required).Else(vd.Empty.Error("email and username cannot be specified at the same time")), is.EmailFormat),
		vd.Field(&r.Username, vd.When(len(r.Email) == 0, vd.Required)),
		vd.Field(&r.Password, vd.Required),
	)
}

// PostLogin POST /users/auth/login
func (h *Handlers) PostLogin(c echo.Context) error {
	var req PostLoginRequest
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}

	var (
		user *model.User
		err  error
	)
	if len(req.Email) > 0 {
		user, err = h.Repo.GetUserByEmail(req.Email)
	} else {
		user, err = h.Repo.GetUserByName(req.Username)
	}
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return herror.Unauthorized(loginFailedMessage)
		}
		return herror.InternalServerError(err)
	}
	if err := user.AuthenticatePassword(req.Password); err != nil {
		return herror.Unauthorized(loginFailedMessage)
	}

	if _, err := h.SessStore.IssueSession(c, user.ID); err != nil {
		return herror.InternalServerError(err)
	}
	return c.JSON(http.StatusOK, formatMe(user))
}

// PostLogout POST /users/auth/logout
func (h *Handlers) PostLogout(c echo.Context) error {
	if err := h.SessStore.RevokeSession(c); err != nil {
		return herror.InternalServerError(err)
	}
	return c.JSON(http.StatusOK, echo.Map{"message": "logout successful"})
}

// GetMe GET /users/me
func (h *Handlers) GetMe(c echo.Context) error {
	return c.JSON(http.StatusOK, formatMe(getRequestUser(c)))
}

// GetUser GET /users/:username
func (h *Handlers) GetUser(c echo.Context) error {
	user := getParamUser(c)

	counts, err := h.Repo.GetFollowCounts(user.ID)
	if err != nil {
		return herror.InternalServerError(err)
	}

	res := &UserDetail{
		ID:             user.ID,
		Username:       user.Username,
		DisplayName:    user.DisplayName,
		Img:            user.Img,
		CreatedAt:      user.CreatedAt,
		FollowerCount:  counts.Followers,
		FollowingCount: counts.Following,
	}
	if me := getRequestUser(c); me != nil {
		following, err := h.Repo.IsFollowing(me.ID, user.ID)
		if err != nil {
			return herror.InternalServerError(err)
		}
		res.IsFollowing = &following
	}
	return c.JSON(http.StatusOK, res)
}

// PostFollow POST /users/follow/:username
func (h *Handlers) PostFollow(c echo.Context) error {
	me := getRequestUser(c)
	target := getParamUser(c)

	following, err := h.Repo.ToggleFollow(me.ID, target.ID)
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
	return c.JSON(http.StatusOK, echo.Map{"isFollowing": following})
}
