package worker

import "errors"

var (
	ErrWorkerNotFound      = errors.New("worker not found")
	ErrOwnerAccessRequired = errors.New("owner access required")
	ErrAdminAccessRequired = errors.New("admin access required")
)
