package session

import (
	"errors"
	"net/http"
	"time"

	"github.com/gofrs/uuid"
	"github.com/golang-jwt/jwt/v5"
	"github.com/labstack/echo/v4"
)

type claims struct {
	UserID string `json:"userId"`
	jwt.RegisteredClaims
}

type jwtSession struct {
	token    string
	userID   uuid.UUID
	issuedAt time.Time
}

func (s *jwtSession) Token() string {
	return s.token
}

func (s *jwtSession) UserID() uuid.UUID {
	return s.userID
}

func (s *jwtSession) IssuedAt() time.Time {
	return s.issuedAt
}

type jwtStore struct {
	secret []byte
	maxAge time.Duration
	secure bool
	parser *jwt.Parser
}

// NewJWTStore HS256で署名したトークンをクッキーに保持するセッションストアを生成します
func NewJWTStore(c Config) Store {
	if c.MaxAge <= 0 {
		c.MaxAge = DefaultMaxAge
	}
	return &jwtStore{
		secret: c.Secret,
		maxAge: c.MaxAge,
		secure: c.Secure,
		parser: jwt.NewParser(jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}), jwt.WithIssuedAt()),
	}
}

func (s *jwtStore) GetSession(c echo.Context) (Session, error) {
	cookie, err := c.Cookie(CookieName)
	if err != nil || len(cookie.Value) == 0 {
		return nil, ErrSessionNotFound
	}

	var cl claims
	token, err := s.parser.ParseWithClaims(cookie.Value, &cl, func(*jwt.Token) (interface{}, error) {
		return s.secret, nil
	})
	if err != nil || !token.Valid {
		return nil, ErrInvalidToken
	}
	uid, err := uuid.FromString(cl.UserID)
	if err != nil || uid == uuid.Nil {
		return nil, ErrInvalidToken
	}

	sess := &jwtSession{token: cookie.Value, userID: uid}
	if cl.IssuedAt != nil {
		sess.issuedAt = cl.IssuedAt.Time
	}
	return sess, nil
}

func (s *jwtStore) IssueSession(c echo.Context, userID uuid.UUID) (Session, error) {
	if userID == uuid.Nil {
		return nil, errors.New("nil user id")
	}

	now := time.Now()
	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims{
		UserID: userID.String(),
		RegisteredClaims: jwt.RegisteredClaims{
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(s.maxAge)),
		},
	}).SignedString(s.secret)
	if err != nil {
		return nil, err
	}

	c.SetCookie(s.cookie(signed, int(s.maxAge.Seconds()), now.Add(s.maxAge)))
	return &jwtSession{token: signed, userID: userID, issuedAt: now}, nil
}

func (s *jwtStore) RevokeSession(c echo.Context) error {
	c.SetCookie(s.cookie("", -1, time.Unix(0, 0)))
	return nil
}

func (s *jwtStore) cookie(value string, maxAge int, expires time.Time) *http.Cookie {
	return &http.Cookie{
		Name:     CookieName,
		Value:    value,
		Path:     "/",
		Expires:  expires,
		MaxAge:   maxAge,
		HttpOnly: true,
		Secure:   s.secure,
		SameSite: http.SameSiteLaxMode,
	}
}
