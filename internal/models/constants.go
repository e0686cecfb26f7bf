package models

const (
	StatusWaiting  = "WAITING"
	StatusApproved = "APPROVED"
	StatusRejected = "REJECTED"
)

const (
	// HeaderUserID carries the numeric id of the calling user.
	// There is no authentication scheme; the gateway forwards it as-is.
	HeaderUserID = "X-Sharer-User-Id"

	// HeaderRequestID is generated by the gateway when the client sends none.
	HeaderRequestID = "X-Request-Id"
)
