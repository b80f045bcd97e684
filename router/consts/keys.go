package consts

const (
	KeyUserID    = "userID"
	KeyUser      = "user"
	KeyParamUser = "paramUser"
	KeyParamPin  = "paramPin"
)
