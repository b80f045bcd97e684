package consts

const (
	ParamUsername = "username"
	ParamUserID   = "userId"
	ParamPinID    = "id"
	ParamPostID   = "postId"
	ParamMediaKey = "*"
)
