package consts

const (
	HeaderCacheControl = "Cache-Control"
	HeaderVersion      = "X-PINBOARD-VERSION"
)
